package transcoder

import (
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/apierrors"
	"github.com/mantonx/reelcast/internal/cache"
	"github.com/mantonx/reelcast/internal/encoder"
	"github.com/mantonx/reelcast/internal/mediainfo"
	"github.com/mantonx/reelcast/internal/playlist"
	"github.com/mantonx/reelcast/internal/quality"
)

// Manager is the process-wide session registry and audio-job set (spec
// §4.5, §5). Reads (get_segment/get_audio_segment) take the read view;
// writes (transcode/transcode_audio) take the write view, which is
// released before the long-running encoder launch per spec §5's
// no-lock-held-during-I/O rule.
type Manager struct {
	logger     hclog.Logger
	store      *cache.Store
	driver     *encoder.Driver
	identifier *mediainfo.Identifier

	mu          sync.RWMutex
	sessions    map[string]*Session
	audioActive map[audioKey]struct{}
}

func NewManager(logger hclog.Logger, store *cache.Store, driver *encoder.Driver, identifier *mediainfo.Identifier) *Manager {
	return &Manager{
		logger:      logger.Named("transcoder"),
		store:       store,
		driver:      driver,
		identifier:  identifier,
		sessions:    make(map[string]*Session),
		audioActive: make(map[audioKey]struct{}),
	}
}

// BuildMaster identifies the already-resolved path and renders the
// multivariant manifest (spec §4.5). Returns a 500 ServiceError on
// identification failure.
func (m *Manager) BuildMaster(path string) (string, error) {
	info, err := m.identifier.Identify(path)
	if err != nil {
		return "", apierrors.Internal("failed to identify media", err)
	}
	return playlist.BuildMaster(info), nil
}

// Transcode implements the quality-switch policy of spec §4.5.
func (m *Manager) Transcode(clientID, path string, q quality.Quality, startTime float64) (string, error) {
	m.mu.Lock()
	existing, ok := m.sessions[clientID]
	if ok && existing.sameTarget(path, q) {
		m.mu.Unlock()
		return m.readStream(m.store.SessionDir(existing.UUID))
	}
	if ok {
		existing.Process.Interrupt()
		delete(m.sessions, clientID)
		if err := os.RemoveAll(m.store.SessionDir(existing.UUID)); err != nil {
			m.logger.Warn("failed to remove stale session dir", "uuid", existing.UUID, "error", err)
		}
	}
	m.mu.Unlock()

	uuid, err := cache.NewSessionID()
	if err != nil {
		return "", apierrors.Internal("failed to allocate session id", err)
	}
	outputDir := m.store.SessionDir(uuid)

	args := encoder.VideoArgs(q)
	proc, err := m.driver.Start(path, outputDir, args, startTime)
	if err != nil {
		return "", translateEncoderError(err)
	}

	session := &Session{ClientID: clientID, SourcePath: path, Quality: q, UUID: uuid, Process: proc}
	m.mu.Lock()
	m.sessions[clientID] = session
	m.mu.Unlock()

	return m.readStream(outputDir)
}

// GetSegment looks up the session by client_id alone (spec §4.5's noted
// limitation: a concurrent quality switch can race this lookup).
func (m *Manager) GetSegment(clientID string, chunk int) (string, error) {
	m.mu.RLock()
	session, ok := m.sessions[clientID]
	m.mu.RUnlock()
	if !ok {
		return "", apierrors.BadRequest("No transcode started for the selected show/quality.")
	}
	return cache.Segment(m.store.SessionDir(session.UUID), chunk), nil
}

// TranscodeAudio launches a shared, client-independent audio encode on
// first request for (path, audio) and returns its manifest (spec §4.5).
func (m *Manager) TranscodeAudio(path string, audioIndex uint32) (string, error) {
	key := audioKey{path: path, index: audioIndex}

	outputDir := m.store.AudioDir(path, audioIndex)

	m.mu.RLock()
	_, active := m.audioActive[key]
	m.mu.RUnlock()
	if active {
		return m.readStream(outputDir)
	}

	m.mu.Lock()
	m.audioActive[key] = struct{}{}
	m.mu.Unlock()

	args := encoder.AudioArgs(audioIndex)
	if _, err := m.driver.Start(path, outputDir, args, 0); err != nil {
		m.mu.Lock()
		delete(m.audioActive, key)
		m.mu.Unlock()
		return "", translateEncoderError(err)
	}

	return m.readStream(outputDir)
}

// GetAudioSegment returns the segment path for an already-started audio
// job (spec §4.5).
func (m *Manager) GetAudioSegment(path string, audioIndex uint32, chunk int) (string, error) {
	key := audioKey{path: path, index: audioIndex}
	m.mu.RLock()
	_, active := m.audioActive[key]
	m.mu.RUnlock()
	if !active {
		return "", apierrors.BadRequest("No transcode started for the selected show/audio.")
	}
	return cache.Segment(m.store.AudioDir(path, audioIndex), chunk), nil
}

func (m *Manager) readStream(dir string) (string, error) {
	streamPath := cache.StreamPlaylist(dir)
	data, err := os.ReadFile(streamPath)
	if err != nil {
		return "", &encoder.ReadError{Path: streamPath, Err: err}
	}
	return string(data), nil
}

// Download encodes path at quality q into a single file (stream-copying
// the video for quality.Original, re-encoding it otherwise) and returns its
// path once ffmpeg has fully exited (spec §3 supplemented feature: the
// offline-download route, gated behind RC_ENABLE_OFFLINE_DOWNLOAD).
func (m *Manager) Download(path string, q quality.Quality) (string, error) {
	uuid, err := cache.NewSessionID()
	if err != nil {
		return "", apierrors.Internal("failed to allocate download id", err)
	}
	outputPath := m.store.SessionDir(uuid) + ".ts"

	args := encoder.VideoArgs(q)
	if err := m.driver.RunToCompletion(path, outputPath, args); err != nil {
		return "", translateEncoderError(err)
	}
	return outputPath, nil
}

// Counts returns the current number of live video sessions and active
// audio jobs, for the /stats endpoint.
func (m *Manager) Counts() (videoSessions, audioJobs int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), len(m.audioActive)
}

func translateEncoderError(err error) error {
	switch e := err.(type) {
	case *encoder.ArgumentError:
		return apierrors.BadRequest(e.Message)
	case *encoder.FFmpegError:
		return apierrors.Internal("ffmpeg failed", e)
	case *encoder.ReadError:
		return apierrors.Internal(fmt.Sprintf("reading %s", e.Path), e)
	default:
		return apierrors.Internal("transcode failed", err)
	}
}
