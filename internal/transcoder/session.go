// Package transcoder owns the session registry and audio-job set and
// implements the build_master/transcode/get_segment/transcode_audio/
// get_audio_segment operations.
package transcoder

import (
	"github.com/mantonx/reelcast/internal/encoder"
	"github.com/mantonx/reelcast/internal/quality"
)

// Session is an in-flight video transcode owned by one client (spec §3).
type Session struct {
	ClientID   string
	SourcePath string
	Quality    quality.Quality
	UUID       string
	Process    *encoder.Process
}

// sameTarget reports whether this session is already encoding the same
// (path, quality), in which case transcode() reuses it (spec §4.5).
func (s *Session) sameTarget(path string, q quality.Quality) bool {
	return s.SourcePath == path && s.Quality == q
}

// audioKey identifies a shared, client-independent audio encode
// (spec §3: "AudioJob. Keyed by (source_path, audio_index). ... No
// per-client ownership").
type audioKey struct {
	path  string
	index uint32
}
