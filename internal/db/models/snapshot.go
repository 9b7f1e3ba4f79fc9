// Package models contains database model definitions.
package models

import (
	"time"
)

// Snapshot is the stored canonical rendering of one zone, exactly as the
// renderer produced it. Round-tripping Content through the normalizer
// reproduces an equivalent record set.
type Snapshot struct {
	ID        uint64 `gorm:"primaryKey"`
	Zone      string `gorm:"unique"`
	Serial    uint32
	Content   []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}
