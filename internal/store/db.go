package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/zonekit/zonekit/internal/db/models"
)

const zoneQueryPattern = "zone = ?"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrZoneEmpty is returned when attempting to store a snapshot without a zone name.
	ErrZoneEmpty = errors.New("zone name cannot be empty")
)

// DBStore keeps rendered zone snapshots in the snapshots table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore returns a database-backed snapshot store.
func NewDBStore(db *gorm.DB) *DBStore { return &DBStore{db: db} }

// Load reads the stored snapshot for a zone.
func (s *DBStore) Load(zone string) (string, error) {
	if s.db == nil {
		return "", ErrDBNil
	}

	var snapshot models.Snapshot

	result := s.db.Where(zoneQueryPattern, normalizeZone(zone)).First(&snapshot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}

		return "", result.Error
	}

	return string(snapshot.Content), nil
}

// Save creates or updates the snapshot for a zone (upsert operation).
func (s *DBStore) Save(zone string, serial uint32, content string) error {
	if s.db == nil {
		return ErrDBNil
	}

	name := normalizeZone(zone)
	if name == "" {
		return ErrZoneEmpty
	}

	var snapshot models.Snapshot

	result := s.db.Where(zoneQueryPattern, name).First(&snapshot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		snapshot = models.Snapshot{Zone: name, Serial: serial, Content: []byte(content)}

		return s.db.Create(&snapshot).Error
	}

	if result.Error != nil {
		return result.Error
	}

	snapshot.Serial = serial
	snapshot.Content = []byte(content)

	return s.db.Save(&snapshot).Error
}

// normalizeZone ensures the zone name has a trailing dot.
func normalizeZone(zone string) string {
	if zone == "" {
		return zone
	}

	if !strings.HasSuffix(zone, ".") {
		return zone + "."
	}

	return zone
}
