// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/config"
)

// ErrUnknownEngine is returned for an unsupported db.gormengine value.
var ErrUnknownEngine = errors.New("unknown gorm engine")

// Create builds the Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	var out string

	switch dbCfg.DB.GormEngine {
	case "postgres":
		out = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d %s",
			dbCfg.DB.Host,
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Name,
			dbCfg.DB.Port,
			dbCfg.DB.Extras,
		)
	case "sqlite":
		out = dbCfg.DB.Name
	default:
		out = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Host,
			dbCfg.DB.Port,
			dbCfg.DB.Name,
			dbCfg.DB.Extras,
		)
	}

	return out
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(dbCfg *config.Config) (gorm.Dialector, error) {
	switch dbCfg.DB.GormEngine {
	case "mysql":
		return gormmysql.Open(Create(dbCfg)), nil
	case "postgres":
		return gormpostgres.Open(Create(dbCfg)), nil
	case "sqlite":
		return sqlite.Open(Create(dbCfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, dbCfg.DB.GormEngine)
	}
}
