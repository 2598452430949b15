// Package api wires gin handlers onto the transcoder core. Out of scope
// per spec §1 (the HTTP routing layer is an external collaborator), but a
// runnable service needs a real boundary, so this adapts the routes
// directly from the reference implementation's video/audio/direct
// handlers.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mantonx/reelcast/internal/apierrors"
)

const missingClientIDMessage = "Missing client id. Please specify the X-CLIENT-ID header to a guid constant for the lifetime of the player (but unique per instance)."

// clientID extracts X-CLIENT-ID, the opaque per-player session key
// (spec §6).
func clientID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-CLIENT-ID")
	if id == "" {
		apierrors.BadRequest(missingClientIDMessage).ToGinResponse(c, nil)
		return "", false
	}
	return id, true
}
