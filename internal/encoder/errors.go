package encoder

import (
	"fmt"
	"strings"
)

// ArgumentError is user input the tool refused (spec §7), e.g. an audio
// index that matches no stream.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// FFmpegError is an opaque tool failure; Stderr carries the diagnostic.
type FFmpegError struct {
	Stderr string
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg failed: %s", e.Stderr)
}

// ReadError is an expected output file missing from disk.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}
func (e *ReadError) Unwrap() error { return e.Err }

// translateStderr maps known ffmpeg diagnostic substrings onto
// ArgumentError (spec §4.3/§8 scenario 6: "matches no streams." becomes
// "Invalid audio index").
func translateStderr(stderr string) error {
	if strings.Contains(stderr, "matches no streams.") {
		return &ArgumentError{Message: "Invalid audio index"}
	}
	return &FFmpegError{Stderr: stderr}
}
