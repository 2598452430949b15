package mediainfo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// extractIfMissing runs the extraction side effect described in spec §4.1:
// if /metadata/{sha}/ doesn't exist yet, create its att/ and sub/
// subdirectories and dump attachments plus every subtitle that has a known
// extension, in one ffmpeg invocation. Idempotent on the directory's
// existence, so identifying the same file twice extracts at most once.
// info.Fonts is populated from the att/ directory's contents either way, so
// a cache hit reports the same font links a fresh extraction would.
func (id *Identifier) extractIfMissing(path string, info *MediaInfo) error {
	metaDir := filepath.Join(id.metadataRoot, info.Sha)
	attDir := filepath.Join(metaDir, "att")
	subDir := filepath.Join(metaDir, "sub")

	if _, err := os.Stat(metaDir); err == nil {
		return id.populateFonts(info, attDir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", metaDir, err)
	}

	if err := os.MkdirAll(attDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", attDir, err)
	}
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", subDir, err)
	}

	args := []string{"-y", "-dump_attachment:t", "", "-i", path}
	for _, sub := range info.Subtitles {
		if sub.Extension == nil {
			continue
		}
		args = append(args,
			"-map", fmt.Sprintf("0:s:%d", sub.Index),
			"-c:s", "copy",
			filepath.Join(subDir, fmt.Sprintf("%d.%s", sub.Index, *sub.Extension)),
		)
	}

	cmd := exec.Command(id.ffmpegPath, args...)
	cmd.Dir = attDir
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(metaDir)
		id.logger.Error("extraction failed", "path", path, "sha", info.Sha, "output", string(out), "error", err)
		return &ExtractionError{Sha: info.Sha, Err: err}
	}

	return id.populateFonts(info, attDir)
}

// populateFonts lists attDir and sets info.Fonts to the URL path each
// dumped attachment is served at (spec §3, GET /{sha}/attachment/{name}).
func (id *Identifier) populateFonts(info *MediaInfo, attDir string) error {
	entries, err := os.ReadDir(attDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", attDir, err)
	}
	fonts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fonts = append(fonts, fmt.Sprintf("/%s/attachment/%s", info.Sha, entry.Name()))
	}
	info.Fonts = fonts
	return nil
}

// ExtractionError reports a fatal failure of the one-shot attachment/
// subtitle extraction pass.
type ExtractionError struct {
	Sha string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("mediainfo: extracting %s failed: %v", e.Sha, e.Err)
}
func (e *ExtractionError) Unwrap() error { return e.Err }
