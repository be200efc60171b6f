package config

import (
	"github.com/dirgraph/dirgraph/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Title   string
	Import  Import
}

// Import implements directory import settings.
type Import struct {
	PageSize       int    // page size for paged directory retrieval (0 = use default)
	FixtureDir     string // directory for raw response fixtures
	RecordFixtures bool   // snapshot raw directory responses to fixture files
	ReplayFixtures bool   // read directory responses from fixture files instead of the network
}
