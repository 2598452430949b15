// Package history keeps a small playback-request ledger: one row per
// transcode/transcode_audio request. This is observability, not the
// session cache itself — it survives restarts only as a historical log,
// the in-memory session registry is always rebuilt from nothing on boot.
package history

import (
	"context"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PlaybackRequest is one logged client-facing transcode/transcode_audio
// call.
type PlaybackRequest struct {
	ID         uint      `gorm:"primaryKey"`
	ClientID   string    `gorm:"index"`
	SourcePath string
	Quality    string
	AudioIndex *uint32
	RequestedAt time.Time `gorm:"index"`
}

// Ledger is the gorm-backed store.
type Ledger struct {
	db *gorm.DB
}

// Open connects to sqlite (a bare filename) or postgres (a "postgres://"
// DSN), migrates the schema, and returns a Ledger.
func Open(databaseURL string) (*Ledger, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&PlaybackRequest{}); err != nil {
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// RecordVideoRequest logs a transcode() call.
func (l *Ledger) RecordVideoRequest(ctx context.Context, clientID, sourcePath, quality string) error {
	return l.db.WithContext(ctx).Create(&PlaybackRequest{
		ClientID:    clientID,
		SourcePath:  sourcePath,
		Quality:     quality,
		RequestedAt: time.Now().UTC(),
	}).Error
}

// RecordAudioRequest logs a transcode_audio() call.
func (l *Ledger) RecordAudioRequest(ctx context.Context, sourcePath string, audioIndex uint32) error {
	idx := audioIndex
	return l.db.WithContext(ctx).Create(&PlaybackRequest{
		SourcePath:  sourcePath,
		AudioIndex:  &idx,
		RequestedAt: time.Now().UTC(),
	}).Error
}

// RecentForClient returns the most recent requests for a client, newest
// first.
func (l *Ledger) RecentForClient(ctx context.Context, clientID string, limit int) ([]PlaybackRequest, error) {
	var rows []PlaybackRequest
	err := l.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("requested_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
