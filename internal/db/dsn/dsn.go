// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/abrigo-digital/shelter-admin/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// For sqlite it returns the database file path.
func Create(dbCfg *config.DB) string {
	switch dbCfg.GormEngine {
	case config.EnginePostgres:
		return postgres(dbCfg)
	case config.EngineSQLite:
		if dbCfg.Path == "" {
			return "file::memory:?cache=shared"
		}

		return dbCfg.Path
	default:
		return mysql(dbCfg)
	}
}

func mysql(dbCfg *config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)

	if dbCfg.Extras != "" {
		out += "?" + dbCfg.Extras
	}

	return out
}

// postgres uses the keyword/value form; Extras is a space separated list.
func postgres(dbCfg *config.DB) string {
	parts := []string{
		"host=" + dbCfg.Host,
		fmt.Sprintf("port=%d", dbCfg.Port),
		"user=" + dbCfg.User,
		"password=" + dbCfg.Password,
		"dbname=" + dbCfg.Name,
	}

	if dbCfg.Extras != "" {
		parts = append(parts, dbCfg.Extras)
	}

	return strings.Join(parts, " ")
}
