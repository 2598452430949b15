// Package mediainfo identifies media files via an external inspector
// (mediainfo) and extracts embedded subtitles/attachments to a
// content-addressed layout, per spec §4.1.
package mediainfo

import "github.com/mantonx/reelcast/internal/quality"

// MediaInfo is immutable once identified (spec §3).
type MediaInfo struct {
	Sha       string       `json:"sha"`
	Path      string       `json:"-"`
	Length    float64      `json:"length"`
	Container string       `json:"container"`
	Video     VideoTrack   `json:"video"`
	Audios    []AudioTrack `json:"audios"`
	Subtitles []Subtitle   `json:"subtitles"`
	Fonts     []string     `json:"fonts"`
	Chapters  []Chapter    `json:"chapters"`
}

// VideoTrack describes the media's sole video stream. Files without one
// are unsupported (spec §3).
type VideoTrack struct {
	Codec          string          `json:"codec"`
	Language       *string         `json:"language,omitempty"`
	Quality        quality.Quality `json:"quality"`
	Width          uint32          `json:"width"`
	Height         uint32          `json:"height"`
	AverageBitrate uint32          `json:"average_bitrate"`
}

// AudioTrack is one entry of the ordered audio list.
type AudioTrack struct {
	Index     uint32  `json:"index"`
	Title     *string `json:"title,omitempty"`
	Language  *string `json:"language,omitempty"`
	Codec     string  `json:"codec"`
	IsDefault bool    `json:"is_default"`
	IsForced  bool    `json:"is_forced"`
}

// Subtitle is one entry of the ordered subtitle list. Link is only set when
// the codec has a known extension mapping (spec §4.1).
type Subtitle struct {
	Index     uint32  `json:"index"`
	Title     *string `json:"title,omitempty"`
	Language  *string `json:"language,omitempty"`
	Codec     string  `json:"codec"`
	Extension *string `json:"extension,omitempty"`
	IsDefault bool    `json:"is_default"`
	IsForced  bool    `json:"is_forced"`
	Link      *string `json:"link,omitempty"`
}

// Chapter marks a named span of the media, in seconds from the start.
type Chapter struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Name      string  `json:"name"`
}

// subtitleExtensions maps a normalized subtitle codec name to the file
// extension it is extracted/served as. Codecs not listed here are reported
// without a link — they cannot be served standalone (spec §4.1).
var subtitleExtensions = map[string]string{
	"subrip": "srt",
	"ass":    "ass",
	"vtt":    "vtt",
}
