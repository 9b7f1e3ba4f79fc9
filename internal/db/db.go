// Package db opens the gorm database connection for the configured engine.
package db

import (
	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zonekit/zonekit/internal/config"
	"github.com/zonekit/zonekit/internal/db/dsn"
	"github.com/zonekit/zonekit/internal/db/models"
)

// Open connects to the configured database and migrates the snapshot
// schema. The PowerDNS domains/records tables read by the SQL acquisition
// backend belong to the name server and are never migrated here.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case "mysql":
		dialector = gormmysql.Open(dsn.MySQL(cfg))
	case "postgres":
		dialector = gormpostgres.Open(dsn.Postgres(cfg))
	default:
		dialector = sqlite.Open(cfg.DB.Path)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = gdb.AutoMigrate(&models.Snapshot{}); err != nil {
		return nil, err
	}

	return gdb, nil
}
