package source

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrDomainNotFound is returned when the zone has no row in the
	// name server's domains table.
	ErrDomainNotFound = errors.New("zone not found in name server database")
)

// Domain mirrors a row of the PowerDNS-style domains table.
type Domain struct {
	ID   int64
	Name string
}

// TableName maps Domain onto the name server's schema.
func (Domain) TableName() string { return "domains" }

// DomainRecord mirrors a row of the PowerDNS-style records table. Prio is
// kept out of Content there, so MX and SRV rdata is reassembled on read.
type DomainRecord struct {
	ID       int64
	DomainID int64
	Name     string
	Type     string
	Content  string
	TTL      int64
	Prio     int64
	Disabled bool
}

// TableName maps DomainRecord onto the name server's schema.
func (DomainRecord) TableName() string { return "records" }

// SQL acquires a zone from a SQL-backed name server database.
type SQL struct {
	db *gorm.DB
}

// NewSQL returns a SQL acquisition source reading from db.
func NewSQL(db *gorm.DB) *SQL { return &SQL{db: db} }

// Lines reads the zone's records and returns them as raw text lines
// suitable for the normalizer. Disabled records are not part of the zone's
// authoritative content and are skipped.
func (s *SQL) Lines(zone string) ([]string, error) {
	name := strings.TrimSuffix(zone, ".")

	var domain Domain

	result := s.db.Where("name = ?", name).First(&domain)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDomainNotFound
		}

		return nil, errors.Wrap(result.Error, "failed to read domains table")
	}

	var records []DomainRecord

	result = s.db.Where("domain_id = ? AND disabled = ?", domain.ID, false).Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to read records table")
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, recordLine(r))
	}

	return lines, nil
}

// recordLine reassembles one row into zone-file syntax.
func recordLine(r DomainRecord) string {
	content := r.Content

	// The schema stores the priority of MX and SRV records in its own
	// column; rdata needs it back in front.
	switch strings.ToUpper(r.Type) {
	case "MX", "SRV":
		content = fmt.Sprintf("%d %s", r.Prio, content)
	}

	name := r.Name
	if !strings.HasSuffix(name, ".") {
		name += "."
	}

	return fmt.Sprintf("%s %d IN %s %s", name, r.TTL, strings.ToUpper(r.Type), content)
}
