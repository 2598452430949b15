package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
)

// GetAudioTranscoded serves GET /{resource}/{slug}/audio/{audio}/index.m3u8.
func (d *Deps) GetAudioTranscoded(c *gin.Context) {
	path, ok := d.resolvePath(c)
	if !ok {
		return
	}

	audioIndex, err := strconv.ParseUint(c.Param("audio"), 10, 32)
	if err != nil {
		apierrors.BadRequest("Invalid audio index").ToGinResponse(c, d.Logger)
		return
	}

	manifest, err := d.Manager.TranscodeAudio(path, uint32(audioIndex))
	if err != nil {
		apierrors.Respond(c, d.Logger, err)
		return
	}

	if d.Ledger != nil {
		if lerr := d.Ledger.RecordAudioRequest(c.Request.Context(), path, uint32(audioIndex)); lerr != nil {
			d.Logger.Warn("failed to log playback request", "error", lerr)
		}
	}

	c.Data(200, "application/vnd.apple.mpegurl", []byte(manifest))
}

// GetAudioChunk serves GET /{resource}/{slug}/audio/{audio}/segments-{chunk}.ts.
func (d *Deps) GetAudioChunk(c *gin.Context) {
	path, ok := d.resolvePath(c)
	if !ok {
		return
	}

	audioIndex, err := strconv.ParseUint(c.Param("audio"), 10, 32)
	if err != nil {
		apierrors.BadRequest("Invalid audio index").ToGinResponse(c, d.Logger)
		return
	}

	chunk, err := parseSegmentChunk(c.Param("segment"))
	if err != nil {
		apierrors.BadRequest("Invalid segment number.").ToGinResponse(c, d.Logger)
		return
	}

	segmentPath, err := d.Manager.GetAudioSegment(path, uint32(audioIndex), chunk)
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
