package config

import (
	"github.com/zonekit/zonekit/internal/logger"
)

// DB holds the database configuration settings. The same connection serves
// both the snapshot store and the SQL acquisition backend.
type DB struct {
	Engine   string // sqlite, mysql or postgres
	Path     string // database file for the sqlite engine
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Store holds the snapshot store settings.
type Store struct {
	Backend string `validate:"omitempty,oneof=file db"`
	Path    string // snapshot directory for the file backend
}

// Updates holds the update channel settings.
type Updates struct {
	Mode          string `validate:"omitempty,oneof=rfc2136 pdns"`
	Server        string // name server host:port for rfc2136
	TSIGName      string
	TSIGSecret    string
	TSIGAlgorithm string
	Timeout       int // seconds to wait for the update channel
}

// PDNS holds the PowerDNS API settings for the pdns update channel.
type PDNS struct {
	URL    string
	VHost  string
	APIKey string
}

// Config overall data structure.
type Config struct {
	Title   string
	Log     logger.Log
	DB      DB
	Store   Store
	Updates Updates
	PDNS    PDNS
}
