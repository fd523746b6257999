// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/anighost1/pp-be/internal/config"
)

// Create builds the gorm Data Source Name for the configured engine.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host, db.Port, db.User, db.Password, db.Name)
		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	case config.EngineSQLite:
		if db.Extras != "" {
			return db.Name + "?" + db.Extras
		}

		return db.Name
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User, db.Password, db.Host, db.Port, db.Name, db.Extras)
	}
}

// StorageURI builds the connection URI used by the gofiber storage drivers.
// Postgres storage expects a URL, mysql storage the go-sql-driver DSN.
func StorageURI(cfg *config.Config) string {
	db := cfg.DB

	if db.GormEngine == config.EnginePostgres {
		out := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", db.User, db.Password, db.Host, db.Port, db.Name)
		if db.Extras != "" {
			out += "?" + db.Extras
		}

		return out
	}

	return Create(cfg)
}
