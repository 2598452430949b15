package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
	"github.com/mantonx/reelcast/internal/quality"
)

// GetOffline serves GET /{resource}/{slug}/offline?quality=, behind
// RC_ENABLE_OFFLINE_DOWNLOAD (spec §3 supplemented feature). Slow: it
// blocks until the whole file has been encoded, then hands back one file.
func (d *Deps) GetOffline(c *gin.Context) {
	if !d.EnableOfflineDownloads {
		apierrors.NotFound("offline downloads are disabled").ToGinResponse(c, d.Logger)
		return
	}

	q, err := quality.Parse(c.Query("quality"))
	if err != nil {
		apierrors.BadRequest("Invalid quality").ToGinResponse(c, d.Logger)
		return
	}

	path, ok := d.resolvePath(c)
	if !ok {
		return
	}

	outputPath, err := d.Manager.Download(path, q)
	if err != nil {
		apierrors.Respond(c, d.Logger, err)
		return
	}

	c.FileAttachment(outputPath, c.Param("slug")+".ts")
}
