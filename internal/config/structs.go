package config

import (
	"time"

	"github.com/anighost1/pp-be/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Menu      Menu
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
	URL            string // base url for the webserver
	BodyLimit      int    // max request body size in bytes, 0 keeps the fiber default
}

// Auth holds login and token settings.
type Auth struct {
	JWTSecret      string        // HMAC secret used to sign session tokens
	TokenExpiry    time.Duration // lifetime of an issued token
	SuperAdminRole string        // role name that bypasses permission aggregation
	AdminUsername  string        // username of the seeded administrator
	AdminPassword  string        // password of the seeded administrator, generated when empty
}

// Menu holds menu tree settings.
type Menu struct {
	SortDirection string // asc or desc on the menu order field
}
