package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/mantonx/reelcast/internal/apierrors"
)

type statsResponse struct {
	ActiveVideoSessions int     `json:"active_video_sessions"`
	ActiveAudioJobs     int     `json:"active_audio_jobs"`
	CPUPercent          float64 `json:"cpu_percent"`
	MemoryPercent       float64 `json:"memory_percent"`
}

// GetStats serves GET /stats: a host-resource snapshot alongside active
// session counts.
func (d *Deps) GetStats(c *gin.Context) {
	cpuPercents, err := cpu.PercentWithContext(c.Request.Context(), 200*time.Millisecond, false)
	if err != nil {
		apierrors.Internal("failed to read cpu stats", err).ToGinResponse(c, d.Logger)
		return
	}
	var cpuPercent float64
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	vmem, err := mem.VirtualMemoryWithContext(c.Request.Context())
	if err != nil {
		apierrors.Internal("failed to read memory stats", err).ToGinResponse(c, d.Logger)
		return
	}

	videoSessions, audioJobs := d.Manager.Counts()

	c.JSON(200, statsResponse{
		ActiveVideoSessions: videoSessions,
		ActiveAudioJobs:     audioJobs,
		CPUPercent:          cpuPercent,
		MemoryPercent:       vmem.UsedPercent,
	})
}
