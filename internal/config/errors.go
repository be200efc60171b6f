package config

import (
	"errors"
)

var (
	// ErrEmptyDBEngine error if config db.gormengine is empty.
	ErrEmptyDBEngine = errors.New("toml config db.gormengine can not be empty")

	// ErrNegativePageSize error if config import.pagesize is negative.
	ErrNegativePageSize = errors.New("toml config import.pagesize can not be negative")

	// ErrEmptyFixtureDir error if fixture recording or replay is enabled without a directory.
	ErrEmptyFixtureDir = errors.New("toml config import.fixturedir can not be empty when fixtures are enabled")
)
