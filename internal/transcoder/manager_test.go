package transcoder

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/apierrors"
	"github.com/mantonx/reelcast/internal/cache"
	"github.com/mantonx/reelcast/internal/encoder"
	"github.com/mantonx/reelcast/internal/quality"
)

// fakeFFmpeg writes a tiny shell script standing in for ffmpeg: it creates
// the expected stream.m3u8 in its output directory (the last argument),
// then prints one out_time_us progress line past the readiness threshold,
// and exits 0. The playlist exists before Driver.Start can report
// readiness, so the manager's read of it right after Start never races the
// script. Good enough to drive Driver.Start without a real encoder.
func fakeFFmpeg(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-ffmpeg.sh")
	script := `#!/bin/sh
last=""
for arg in "$@"; do
  last="$arg"
done
out_dir=$(dirname "$last")
mkdir -p "$out_dir"
touch "$out_dir/stream.m3u8"
echo "out_time_us=20000000"
exit 0
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	root := t.TempDir()
	store := cache.NewStore(filepath.Join(root, "cache"), filepath.Join(root, "metadata"))
	if err := store.Wipe(hclog.NewNullLogger()); err != nil {
		t.Fatal(err)
	}
	driver := encoder.NewDriver(hclog.NewNullLogger(), fakeFFmpeg(t))
	return NewManager(hclog.NewNullLogger(), store, driver, nil)
}

func TestTranscodeSameTargetReusesSession(t *testing.T) {
	m := newTestManager(t)

	first, err := m.Transcode("client-1", "/media/movie.mkv", quality.P720, 0)
	if err != nil {
		t.Fatalf("first Transcode: %v", err)
	}

	m.mu.RLock()
	uuid := m.sessions["client-1"].UUID
	m.mu.RUnlock()

	second, err := m.Transcode("client-1", "/media/movie.mkv", quality.P720, 0)
	if err != nil {
		t.Fatalf("second Transcode: %v", err)
	}
	if first != second {
		t.Errorf("expected identical manifest on repeat call, got %q vs %q", first, second)
	}

	m.mu.RLock()
	sameUUID := m.sessions["client-1"].UUID == uuid
	m.mu.RUnlock()
	if !sameUUID {
		t.Error("expected the session directory to be unchanged across identical calls")
	}
}

func TestTranscodeQualitySwitchRemovesOldDir(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Transcode("client-1", "/media/movie.mkv", quality.P720, 0); err != nil {
		t.Fatalf("first Transcode: %v", err)
	}
	m.mu.RLock()
	oldDir := m.store.SessionDir(m.sessions["client-1"].UUID)
	m.mu.RUnlock()

	if _, err := m.Transcode("client-1", "/media/movie.mkv", quality.P1080, 0); err != nil {
		t.Fatalf("second Transcode: %v", err)
	}

	if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
		t.Errorf("expected old session dir %s removed after quality switch", oldDir)
	}

	m.mu.RLock()
	newQuality := m.sessions["client-1"].Quality
	m.mu.RUnlock()
	if newQuality != quality.P1080 {
		t.Errorf("expected session quality updated to 1080p, got %s", newQuality)
	}
}

func TestGetSegmentWithNoSessionIsBadRequest(t *testing.T) {
	m := newTestManager(t)
	_, err := m.GetSegment("unknown-client", 0)
	if err == nil {
		t.Fatal("expected error for unknown client")
	}
	svcErr, ok := err.(*apierrors.ServiceError)
	if !ok || svcErr.Status != http.StatusBadRequest {
		t.Errorf("expected a 400 ServiceError, got %T %v", err, err)
	}
}
