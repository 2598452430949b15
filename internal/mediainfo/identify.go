package mediainfo

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/quality"
)

// Identifier probes media files with an external mediainfo-compatible
// inspector and extracts their subtitles/attachments.
type Identifier struct {
	logger        hclog.Logger
	inspectorPath string
	ffmpegPath    string
	metadataRoot  string
}

func NewIdentifier(logger hclog.Logger, inspectorPath, ffmpegPath, metadataRoot string) *Identifier {
	return &Identifier{
		logger:        logger.Named("identifier"),
		inspectorPath: inspectorPath,
		ffmpegPath:    ffmpegPath,
		metadataRoot:  metadataRoot,
	}
}

// NoVideoTrackError is returned when the probed file has no Video track.
type NoVideoTrackError struct{ Path string }

func (e *NoVideoTrackError) Error() string {
	return fmt.Sprintf("mediainfo: %s has no video track", e.Path)
}

// ProbeError wraps a non-zero exit from the inspector process.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("mediainfo: probing %s failed: %v", e.Path, e.Err)
}
func (e *ProbeError) Unwrap() error { return e.Err }

// Identify runs the external inspector against path, normalizes its output
// into a MediaInfo, derives the stable sha, and triggers extraction of
// subtitles/attachments if it has not already run for this sha.
func (id *Identifier) Identify(path string) (*MediaInfo, error) {
	report, err := id.probe(path)
	if err != nil {
		return nil, &ProbeError{Path: path, Err: err}
	}

	var general map[string]string
	var videoTrack *map[string]string
	var audios []map[string]string
	var subtitles []map[string]string
	var chapters []map[string]string

	for i := range report.Media.Track {
		t := report.Media.Track[i]
		switch t["@type"] {
		case "General":
			general = t
		case "Video":
			if videoTrack == nil {
				videoTrack = &report.Media.Track[i]
			}
		case "Audio":
			audios = append(audios, t)
		case "Text":
			subtitles = append(subtitles, t)
		case "Menu":
			chapters = append(chapters, t)
		}
	}

	if videoTrack == nil {
		return nil, &NoVideoTrackError{Path: path}
	}

	sha, err := id.deriveSha(path, general)
	if err != nil {
		return nil, err
	}

	info := &MediaInfo{
		Sha:       sha,
		Path:      path,
		Length:    parseFloat(general["Duration"]) / 1000,
		Container: general["Format"],
		Video:     buildVideoTrack(*videoTrack, general),
		Audios:    buildAudioTracks(audios),
		Subtitles: buildSubtitles(subtitles, sha),
		Chapters:  buildChapters(chapters),
	}

	if err := id.extractIfMissing(path, info); err != nil {
		return nil, err
	}

	return info, nil
}

func (id *Identifier) probe(path string) (*rawReport, error) {
	cmd := exec.Command(id.inspectorPath, "--Output=JSON", "--Full", path)
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	var report rawReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("decoding inspector output: %w", err)
	}
	return &report, nil
}

// deriveSha prefers the container UniqueID (spec §4.1: length >= 5 filters
// sentinel values like "0" or "1"), else hashes (path, mtime) with xxhash.
func (id *Identifier) deriveSha(path string, general map[string]string) (string, error) {
	if uid := strings.TrimSpace(general["UniqueID"]); len(uid) >= 5 {
		return uid, nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	h := xxhash.New()
	fmt.Fprintf(h, "%s:%d", path, fi.ModTime().UnixNano())
	return strconv.FormatUint(h.Sum64(), 16), nil
}

func buildVideoTrack(v, general map[string]string) VideoTrack {
	bitrate := v["BitRate"]
	if bitrate == "" {
		bitrate = general["OverallBitRate"]
	}
	vt := VideoTrack{
		Codec:          v["CodecID"],
		Width:          parseUint32(v["Width"]),
		Height:         parseUint32(v["Height"]),
		AverageBitrate: parseUint32(bitrate),
	}
	if lang := v["Language"]; lang != "" {
		vt.Language = &lang
	}
	vt.Quality = quality.FromHeight(vt.Height)
	return vt
}

func buildAudioTracks(raws []map[string]string) []AudioTrack {
	out := make([]AudioTrack, 0, len(raws))
	for i, r := range raws {
		at := AudioTrack{
			Index:     normalizedIndex(r, i),
			Codec:     strings.ToLower(r["CodecID"]),
			IsDefault: r["Default"] == "Yes",
			IsForced:  r["Forced"] == "Yes",
		}
		if title := r["Title"]; title != "" {
			at.Title = &title
		}
		if lang := r["Language"]; lang != "" {
			at.Language = &lang
		}
		out = append(out, at)
	}
	return out
}

func buildSubtitles(raws []map[string]string, sha string) []Subtitle {
	out := make([]Subtitle, 0, len(raws))
	for i, r := range raws {
		codec := normalizeSubtitleCodec(r["CodecID"], r["Format"])
		sub := Subtitle{
			Index:     normalizedIndex(r, i),
			Codec:     codec,
			IsDefault: r["Default"] == "Yes",
			IsForced:  r["Forced"] == "Yes",
		}
		if title := r["Title"]; title != "" {
			sub.Title = &title
		}
		if lang := r["Language"]; lang != "" {
			sub.Language = &lang
		}
		if ext, ok := subtitleExtensions[codec]; ok {
			sub.Extension = &ext
			link := fmt.Sprintf("/%s/subtitle/%d.%s", sha, sub.Index, ext)
			sub.Link = &link
		}
		out = append(out, sub)
	}
	return out
}

// normalizeSubtitleCodec lowercases the codec (the track's Format, falling
// back to its CodecID) and rewrites the "utf-8" sentinel (plain-text
// subtitle streams) to "subrip" per spec §4.1.
func normalizeSubtitleCodec(codecID, format string) string {
	codec := strings.ToLower(format)
	if codec == "" {
		codec = strings.ToLower(codecID)
	}
	if codec == "utf-8" {
		return "subrip"
	}
	return codec
}

func buildChapters(raws []map[string]string) []Chapter {
	chapters := make([]Chapter, 0, len(raws))
	for _, r := range raws {
		for key, name := range r {
			if key == "@type" || name == "" {
				continue
			}
			start, ok := parseMenuTimestamp(key)
			if !ok {
				continue
			}
			chapters = append(chapters, Chapter{StartTime: start, Name: name})
		}
	}
	// Menu keys arrive from a map, so iteration order is random; EndTime is
	// derived from each chapter's successor and requires StartTime order.
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].StartTime < chapters[j].StartTime })
	for i := range chapters {
		if i+1 < len(chapters) {
			chapters[i].EndTime = chapters[i+1].StartTime
		}
	}
	return chapters
}

// parseMenuTimestamp parses a mediainfo Menu track key of the form
// "HH:MM:SS.mmm" into seconds from the start.
func parseMenuTimestamp(key string) (float64, bool) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.ParseFloat(parts[0], 64)
	m, err2 := strconv.ParseFloat(parts[1], 64)
	s, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return h*3600 + m*60 + s, true
}

// normalizedIndex returns the per-type ordinal (mediainfo's 1-based
// "@typeorder") minus one, defaulting to the loop position when it is
// absent (spec §4.1).
func normalizedIndex(r map[string]string, position int) uint32 {
	if so := r["@typeorder"]; so != "" {
		if v, err := strconv.ParseUint(so, 10, 32); err == nil && v > 0 {
			return uint32(v - 1)
		}
	}
	return uint32(position)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseUint32(s string) uint32 {
	v, _ := strconv.ParseUint(s, 10, 32)
	return uint32(v)
}
