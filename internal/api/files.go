package api

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
)

// GetAttachment serves GET /{sha}/attachment/{name}. The sha is bound to
// the shared :resource route param (see RegisterRoutes).
func (d *Deps) GetAttachment(c *gin.Context) {
	sha := c.Param("resource")
	name := c.Param("name")
	path := d.Store.AttachmentPath(sha, name)
	if !fileExists(path) {
		apierrors.NotFound("attachment not found").ToGinResponse(c, d.Logger)
		return
	}
	c.File(path)
}

// GetSubtitle serves GET /{sha}/subtitle/{name}, where name is
// "{index}.{ext}". The sha is bound to the shared :resource route param
// (see RegisterRoutes).
func (d *Deps) GetSubtitle(c *gin.Context) {
	sha := c.Param("resource")
	name := c.Param("name")

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	indexPart := strings.TrimSuffix(name, "."+ext)

	index, err := parseUintStrict(indexPart)
	if err != nil {
		apierrors.BadRequest("Invalid subtitle name").ToGinResponse(c, d.Logger)
		return
	}

	path := d.Store.SubtitlePath(sha, index, ext)
	if !fileExists(path) {
		apierrors.NotFound("subtitle not found").ToGinResponse(c, d.Logger)
		return
	}
	c.File(path)
}
