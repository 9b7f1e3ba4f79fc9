// Package store persists rendered canonical zone snapshots, either as plain
// files or in the database.
package store

import (
	"errors"
)

var (
	// ErrNotFound is returned when no snapshot is stored for a zone.
	ErrNotFound = errors.New("no stored snapshot for zone")
)

// Store reads and writes the canonical text snapshot of a zone. The content
// is always the renderer's exact output format.
type Store interface {
	Load(zone string) (string, error)
	Save(zone string, serial uint32, content string) error
}
