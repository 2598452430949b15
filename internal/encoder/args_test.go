package encoder

import (
	"strings"
	"testing"

	"github.com/mantonx/reelcast/internal/quality"
)

func TestVideoArgsOriginalIsPassthrough(t *testing.T) {
	args := VideoArgs(quality.Original)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-c:v copy") {
		t.Errorf("expected stream-copy passthrough, got %q", joined)
	}
}

func TestVideoArgsScaledQualityCarriesBudget(t *testing.T) {
	args := VideoArgs(quality.P720)
	joined := strings.Join(args, " ")
	for _, want := range []string{"-c:v libx264", "min(720,ih)", "-b:v 2400000", "-maxrate 4000000"} {
		if !strings.Contains(joined, want) {
			t.Errorf("VideoArgs(720p) missing %q: %q", want, joined)
		}
	}
}

func TestAudioArgsMapsRequestedIndex(t *testing.T) {
	args := AudioArgs(2)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "0:a:2") {
		t.Errorf("expected map of audio index 2, got %q", joined)
	}
}

func TestTranslateStderrRecognizesBadAudioIndex(t *testing.T) {
	err := translateStderr("Stream map '0:a:9' matches no streams.")
	if _, ok := err.(*ArgumentError); !ok {
		t.Fatalf("expected ArgumentError, got %T", err)
	}
}

func TestTranslateStderrDefaultsToFFmpegError(t *testing.T) {
	err := translateStderr("Unknown encoder 'libx265'")
	if _, ok := err.(*FFmpegError); !ok {
		t.Fatalf("expected FFmpegError, got %T", err)
	}
}
