package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
	"github.com/mantonx/reelcast/internal/resolver"
)

// resolvePath resolves {resource}/{slug} to an absolute path, writing a
// 404 response directly if the upstream rejects it.
func (d *Deps) resolvePath(c *gin.Context) (string, bool) {
	resource := c.Param("resource")
	slug := c.Param("slug")

	path, err := d.Resolver.Resolve(c.Request.Context(), resource, slug)
	if err != nil {
		var notFound *resolver.NotFoundError
		if errors.As(err, &notFound) {
			apierrors.NotFound("resource not found").ToGinResponse(c, d.Logger)
			return "", false
		}
		apierrors.Internal("failed to resolve path", err).ToGinResponse(c, d.Logger)
		return "", false
	}
	return path, true
}
