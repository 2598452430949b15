package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
	"github.com/mantonx/reelcast/internal/quality"
)

// GetMaster serves GET /{resource}/{slug}/master.m3u8.
func (d *Deps) GetMaster(c *gin.Context) {
	path, ok := d.resolvePath(c)
	if !ok {
		return
	}
	manifest, err := d.Manager.BuildMaster(path)
	if err != nil {
		apierrors.Respond(c, d.Logger, err)
		return
	}
	c.Data(200, "application/vnd.apple.mpegurl", []byte(manifest))
}

// GetTranscoded serves GET /{resource}/{slug}/{quality}/index.m3u8.
func (d *Deps) GetTranscoded(c *gin.Context) {
	clientID, ok := clientID(c)
	if !ok {
		return
	}
	path, ok := d.resolvePath(c)
	if !ok {
		return
	}

	q, err := quality.Parse(c.Param("quality"))
	if err != nil {
		apierrors.BadRequest("Invalid quality").ToGinResponse(c, d.Logger)
		return
	}

	startTime := parseStartTime(c)

	manifest, err := d.Manager.Transcode(clientID, path, q, startTime)
	if err != nil {
		apierrors.Respond(c, d.Logger, err)
		return
	}

	if d.Ledger != nil {
		if lerr := d.Ledger.RecordVideoRequest(c.Request.Context(), clientID, path, q.String()); lerr != nil {
			d.Logger.Warn("failed to log playback request", "error", lerr)
		}
	}

	c.Data(200, "application/vnd.apple.mpegurl", []byte(manifest))
}

// GetChunk serves GET /{resource}/{slug}/{quality}/segments-{chunk}.ts.
func (d *Deps) GetChunk(c *gin.Context) {
	clientID, ok := clientID(c)
	if !ok {
		return
	}

	if _, err := quality.Parse(c.Param("quality")); err != nil {
		apierrors.BadRequest("Invalid quality").ToGinResponse(c, d.Logger)
		return
	}

	chunk, err := parseSegmentChunk(c.Param("segment"))
	if err != nil {
		apierrors.BadRequest("Invalid segment number.").ToGinResponse(c, d.Logger)
		return
	}

	segmentPath, err := d.Manager.GetSegment(clientID, chunk)
	if err != nil {
		apierrors.Respond(c, d.Logger, err)
		return
	}

	if !fileExists(segmentPath) {
		apierrors.BadRequest("Invalid segment number.").ToGinResponse(c, d.Logger)
		return
	}
	c.File(segmentPath)
}

// parseStartTime reads the optional ?from= query parameter (seconds into
// the source), defaulting to 0.
func parseStartTime(c *gin.Context) float64 {
	raw := c.Query("from")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
