// Package playlist renders the HLS multivariant manifest that lists every
// quality and audio alternate a client can switch between.
package playlist

import (
	"fmt"
	"math"
	"strings"

	"github.com/mantonx/reelcast/internal/mediainfo"
	"github.com/mantonx/reelcast/internal/quality"
)

// avcCodecTag is a fixed placeholder (H.264 High@4.0) — actual codec
// negotiation per-stream is out of scope (spec §4.6).
const avcCodecTag = "avc1.640028"

// BuildMaster renders the full multivariant manifest for info (spec §4.6):
// the original passthrough variant first, then every transcoded quality
// strictly below the source height, then one audio alternate per track.
func BuildMaster(info *mediainfo.MediaInfo) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")

	writeOriginalVariant(&b, info.Video)

	aspect := float64(info.Video.Width) / float64(info.Video.Height)
	for _, q := range quality.Iter() {
		if q.Height() >= info.Video.Height {
			continue
		}
		writeTranscodedVariant(&b, q, aspect)
	}

	for _, audio := range info.Audios {
		writeAudioAlternate(&b, audio)
	}

	return b.String()
}

func writeOriginalVariant(b *strings.Builder, video mediainfo.VideoTrack) {
	bandwidth := uint64(math.Floor(float64(video.AverageBitrate) * 1.2))
	fmt.Fprintf(b, "#EXT-X-STREAM-INF:AVERAGE-BANDWIDTH=%d,BANDWIDTH=%d,RESOLUTION=%dx%d,AUDIO=\"audio\"\n",
		video.AverageBitrate, bandwidth, video.Width, video.Height)
	b.WriteString("./original/index.m3u8\n")
}

func writeTranscodedVariant(b *strings.Builder, q quality.Quality, aspect float64) {
	height := q.Height()
	width := uint32(math.Round(aspect * float64(height)))
	avg := q.AverageBitrate()
	bandwidth := uint64(math.Floor(float64(avg) * 1.2))

	fmt.Fprintf(b, "#EXT-X-STREAM-INF:AVERAGE-BANDWIDTH=%d,BANDWIDTH=%d,RESOLUTION=%dx%d,CODECS=\"%s\",AUDIO=\"audio\"\n",
		avg, bandwidth, width, height, avcCodecTag)
	fmt.Fprintf(b, "./%s/index.m3u8\n", q)
}

func writeAudioAlternate(b *strings.Builder, audio mediainfo.AudioTrack) {
	name := audioName(audio)

	var languageAttr string
	if audio.Language != nil {
		languageAttr = fmt.Sprintf(",LANGUAGE=%q", *audio.Language)
	}

	fmt.Fprintf(b, "#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"audio\"%s,NAME=%q,DEFAULT=YES,URI=\"./audio/%d/index.m3u8\"\n",
		languageAttr, name, audio.Index)
}

// audioName resolves NAME in order title -> language -> "Audio {index}"
// (spec §4.6 — the attribute is mandatory, some players crash without it).
func audioName(audio mediainfo.AudioTrack) string {
	if audio.Title != nil && *audio.Title != "" {
		return *audio.Title
	}
	if audio.Language != nil && *audio.Language != "" {
		return *audio.Language
	}
	return fmt.Sprintf("Audio %d", audio.Index)
}
