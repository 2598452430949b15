// Package cache computes the content-addressed on-disk paths the encoder
// and session manager write to and read from, and performs the
// startup wipe.
package cache

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-hclog"
)

const uuidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const uuidLength = 30

// Store resolves cache/metadata paths under a fixed root pair.
type Store struct {
	CacheRoot    string
	MetadataRoot string
}

func NewStore(cacheRoot, metadataRoot string) *Store {
	return &Store{CacheRoot: cacheRoot, MetadataRoot: metadataRoot}
}

// Wipe removes every direct child of CacheRoot, recreating the root itself
// (spec §4.4: "/cache/ ... each direct child directory removed
// recursively; directory must exist"). Called once at process startup.
func (s *Store) Wipe(logger hclog.Logger) error {
	if err := os.MkdirAll(s.CacheRoot, 0o755); err != nil {
		return fmt.Errorf("creating cache root %s: %w", s.CacheRoot, err)
	}
	entries, err := os.ReadDir(s.CacheRoot)
	if err != nil {
		return fmt.Errorf("reading cache root %s: %w", s.CacheRoot, err)
	}
	for _, e := range entries {
		full := filepath.Join(s.CacheRoot, e.Name())
		if err := os.RemoveAll(full); err != nil {
			return fmt.Errorf("wiping %s: %w", full, err)
		}
		logger.Debug("wiped stale cache entry", "path", full)
	}
	return nil
}

// NewSessionID generates a 30-char [A-Za-z0-9] id for a video session
// directory (spec §4.4).
func NewSessionID() (string, error) {
	out := make([]byte, uuidLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(uuidAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = uuidAlphabet[n.Int64()]
	}
	return string(out), nil
}

// AudioKey hashes (path, audioIndex) with a deterministic, seedless hasher,
// returned as lowercase hex (spec §4.4).
func AudioKey(path string, audioIndex uint32) string {
	h := xxhash.New()
	fmt.Fprintf(h, "%s:%d", path, audioIndex)
	return strconv.FormatUint(h.Sum64(), 16)
}

// SessionDir is /cache/{uuid}.
func (s *Store) SessionDir(uuid string) string {
	return filepath.Join(s.CacheRoot, uuid)
}

// AudioDir is /cache/{audio_key}.
func (s *Store) AudioDir(path string, audioIndex uint32) string {
	return filepath.Join(s.CacheRoot, AudioKey(path, audioIndex))
}

// StreamPlaylist is {dir}/stream.m3u8.
func StreamPlaylist(dir string) string {
	return filepath.Join(dir, "stream.m3u8")
}

// Segment is {dir}/segments-{chunk:02}.ts.
func Segment(dir string, chunk int) string {
	return filepath.Join(dir, fmt.Sprintf("segments-%02d.ts", chunk))
}

// MetadataDir is /metadata/{sha}.
func (s *Store) MetadataDir(sha string) string {
	return filepath.Join(s.MetadataRoot, sha)
}

// AttachmentPath is /metadata/{sha}/att/{name}.
func (s *Store) AttachmentPath(sha, name string) string {
	return filepath.Join(s.MetadataDir(sha), "att", name)
}

// SubtitlePath is /metadata/{sha}/sub/{index}.{ext}.
func (s *Store) SubtitlePath(sha string, index uint32, ext string) string {
	return filepath.Join(s.MetadataDir(sha), "sub", fmt.Sprintf("%d.%s", index, ext))
}
