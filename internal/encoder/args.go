// Package encoder drives ffmpeg as a child process to produce an HLS
// stream into a content-addressed output directory, and translates its
// failures into the transcoder layer's error kinds.
package encoder

import (
	"fmt"

	"github.com/mantonx/reelcast/internal/quality"
)

// SegmentTime is the HLS segment duration target, in seconds (spec §4.3).
const SegmentTime = 10

// ReadyThreshold is how much encoded wallclock the driver waits for before
// returning success, relative to the encode's start_time (spec §4.3).
const ReadyThreshold = 1.5 * SegmentTime

// VideoArgs builds the ffmpeg middle slice for a video quality (spec §4.3).
// For quality.Original it is a stream-copy passthrough.
func VideoArgs(q quality.Quality) []string {
	if q == quality.Original {
		return []string{"-map", "0:V:0", "-c:v", "copy"}
	}

	height := q.Height()
	avg := q.AverageBitrate()
	max := q.MaxBitrate()
	bufsize := max * 5

	return []string{
		"-map", "0:V:0",
		"-c:v", "libx264",
		"-crf", "21",
		"-preset", "veryfast",
		"-vf", fmt.Sprintf("scale=-2:'min(%d,ih)'", height),
		"-bufsize", fmt.Sprintf("%d", bufsize),
		"-b:v", fmt.Sprintf("%d", avg),
		"-maxrate", fmt.Sprintf("%d", max),
		"-force_key_frames", fmt.Sprintf("expr:gte(t,n_forced*%d)", SegmentTime),
		"-strict", "-2",
		"-segment_time_delta", "0.1",
	}
}

// AudioArgs builds the ffmpeg middle slice for one audio stream index
// (spec §4.3).
func AudioArgs(audioIndex uint32) []string {
	return []string{
		"-map", fmt.Sprintf("0:a:%d", audioIndex),
		"-c:a", "aac",
		"-ac", "2",
		"-b:a", "128k",
	}
}

// downloadArgs assembles a single-file mpegts encode invocation for the
// offline-download route: no segmentation, wait for full completion.
func downloadArgs(sourcePath, outputPath string, encodeArgs []string) []string {
	args := []string{
		"-y",
		"-progress", "pipe:1",
		"-nostats",
		"-loglevel", "error",
		"-i", sourcePath,
	}
	args = append(args, encodeArgs...)
	args = append(args, "-f", "mpegts", outputPath)
	return args
}

// fullArgs assembles the fixed invocation shape around encodeArgs
// (spec §4.3): unbuffered key=value progress on stdout, suppressed
// banner/stats, seek before input, then the caller's encode-specific
// slice, then the fixed HLS muxer options.
func fullArgs(sourcePath, outputDir string, encodeArgs []string, startTime float64) []string {
	args := []string{
		"-y",
		"-progress", "pipe:1",
		"-nostats",
		"-loglevel", "error",
		"-ss", fmt.Sprintf("%f", startTime),
		"-i", sourcePath,
	}
	args = append(args, encodeArgs...)
	args = append(args,
		"-f", "hls",
		"-hls_flags", "temp_file",
		"-hls_allow_cache", "1",
		"-hls_list_size", "0",
		"-hls_time", fmt.Sprintf("%d", SegmentTime),
		"-hls_segment_filename", outputDir+"/segments-%02d.ts",
		outputDir+"/stream.m3u8",
	)
	return args
}
