package api

import (
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/cache"
	"github.com/mantonx/reelcast/internal/history"
	"github.com/mantonx/reelcast/internal/mediainfo"
	"github.com/mantonx/reelcast/internal/resolver"
	"github.com/mantonx/reelcast/internal/transcoder"
)

// Deps is everything a handler needs: the transcoding core, the upstream
// path resolver, and the optional playback ledger.
type Deps struct {
	Logger     hclog.Logger
	Manager    *transcoder.Manager
	Resolver   *resolver.Resolver
	Identifier *mediainfo.Identifier
	Store      *cache.Store
	Ledger     *history.Ledger // nil disables request logging

	EnableOfflineDownloads bool
}
