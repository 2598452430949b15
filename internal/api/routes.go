package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches every route in spec §6's table (plus the
// supplemental /stats and offline-download routes) onto engine.
//
// gin's router requires every route sharing a tree position to agree on
// its wildcard's name, so the attachment/subtitle routes' {sha} and the
// resource routes' {resource} both bind to the single root-level :resource
// param; the attachment/subtitle handlers just read it back as a sha.
func RegisterRoutes(engine *gin.Engine, deps *Deps) {
	root := engine.Group("/:resource")
	{
		root.GET("/attachment/:name", deps.GetAttachment)
		root.GET("/subtitle/:name", deps.GetSubtitle)

		slug := root.Group("/:slug")
		{
			slug.GET("/direct", deps.GetDirect)
			slug.GET("/master.m3u8", deps.GetMaster)
			slug.GET("/info", deps.GetInfo)
			slug.GET("/offline", deps.GetOffline)

			slug.GET("/audio/:audio/index.m3u8", deps.GetAudioTranscoded)
			slug.GET("/audio/:audio/:segment", deps.GetAudioChunk)

			slug.GET("/:quality/index.m3u8", deps.GetTranscoded)
			slug.GET("/:quality/:segment", deps.GetChunk)
		}
	}

	engine.GET("/stats", deps.GetStats)
}
