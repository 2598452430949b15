package api

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetDirect serves GET /{resource}/{slug}/direct, the raw source file.
func (d *Deps) GetDirect(c *gin.Context) {
	path, ok := d.resolvePath(c)
	if !ok {
		return
	}
	if !fileExists(path) {
		apierrors.NotFound("source file not found").ToGinResponse(c, d.Logger)
		return
	}
	c.File(path)
}

// GetInfo serves GET /{resource}/{slug}/info, the identified MediaInfo.
func (d *Deps) GetInfo(c *gin.Context) {
	path, ok := d.resolvePath(c)
	if !ok {
		return
	}
	info, err := d.Identifier.Identify(path)
	if err != nil {
		apierrors.Internal("failed to identify media", err).ToGinResponse(c, d.Logger)
		return
	}
	c.JSON(200, info)
}
