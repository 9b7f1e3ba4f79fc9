// Package zone implements the canonical form of DNS zone data: it parses
// loosely formatted resource-record text, fully qualifies and defaults every
// field, imposes a stable human-oriented total order, renders aligned zone
// files and computes minimal add/delete diffs between two zone snapshots.
package zone

import (
	"strconv"
	"strings"
)

// ClassIN is the only resource-record class this tool handles.
const ClassIN = "IN"

// Well-known record type mnemonics with special handling somewhere in the
// pipeline. Everything else is carried through opaquely.
const (
	TypeSOA   = "SOA"
	TypeA     = "A"
	TypeAAAA  = "AAAA"
	TypeCNAME = "CNAME"
	TypeDNAME = "DNAME"
	TypeNS    = "NS"
	TypeMX    = "MX"
	TypeTXT   = "TXT"
	TypeSPF   = "SPF"
	TypeSRV   = "SRV"
	TypeTLSA  = "TLSA"
	TypeSSHFP = "SSHFP"
)

// soaSerialField is the position of the serial number in SOA rdata
// (mname rname serial refresh retry expire minimum).
const soaSerialField = 2

// soaMinimumField is the position of the minimum TTL in SOA rdata.
const soaMinimumField = 6

// Record is one fully specified resource record. After normalization every
// field is populated and Name is fully qualified (dot-terminated). Names are
// only shortened relative to the origin at render time.
type Record struct {
	Name  string
	TTL   uint32
	Class string
	Type  string
	Data  []string
}

// Rdata returns the record payload as a single space-joined string.
func (r Record) Rdata() string { return strings.Join(r.Data, " ") }

// Text returns the normalized single-line form of the record. Two records
// are the same record for diffing purposes iff their Text is byte-identical.
func (r Record) Text() string {
	fields := make([]string, 0, 4+len(r.Data))
	fields = append(fields, r.Name, strconv.FormatUint(uint64(r.TTL), 10), r.Class, r.Type)
	fields = append(fields, r.Data...)

	return strings.Join(fields, " ")
}

// IsWildcard reports whether the record's owner name is a wildcard.
func (r Record) IsWildcard() bool { return strings.HasPrefix(r.Name, "*.") }

// SOASerial returns the serial number of an SOA record.
func (r Record) SOASerial() (uint32, error) {
	if r.Type != TypeSOA || len(r.Data) <= soaSerialField {
		return 0, ErrNotSOA
	}

	serial, err := strconv.ParseUint(r.Data[soaSerialField], 10, 32)
	if err != nil {
		return 0, ErrNotSOA
	}

	return uint32(serial), nil
}

// WithSOASerial returns a copy of an SOA record with the serial replaced.
// The receiver is left untouched; snapshots are never mutated in place.
func (r Record) WithSOASerial(serial uint32) Record {
	data := make([]string, len(r.Data))
	copy(data, r.Data)
	data[soaSerialField] = strconv.FormatUint(uint64(serial), 10)
	r.Data = data

	return r
}

// soaMinimum returns the minimum-TTL field of an SOA record.
func (r Record) soaMinimum() (uint32, bool) {
	if r.Type != TypeSOA || len(r.Data) <= soaMinimumField {
		return 0, false
	}

	minTTL, err := strconv.ParseUint(r.Data[soaMinimumField], 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(minTTL), true
}

// sameExceptSerial reports whether two SOA records differ at most in their
// serial number field.
func sameExceptSerial(a, b Record) bool {
	if a.Name != b.Name || a.TTL != b.TTL || a.Class != b.Class || a.Type != b.Type {
		return false
	}

	if len(a.Data) != len(b.Data) {
		return false
	}

	for i := range a.Data {
		if i == soaSerialField {
			continue
		}

		if a.Data[i] != b.Data[i] {
			return false
		}
	}

	return true
}

// Snapshot is one immutable state of a zone: a record collection plus the
// directive context it was normalized under. Snapshots are compared by set
// difference and never merged in place.
type Snapshot struct {
	Origin     string
	DefaultTTL uint32
	Records    []Record
}

// SOA returns the zone's SOA record, if present.
func (s *Snapshot) SOA() (Record, bool) {
	for _, r := range s.Records {
		if r.Type == TypeSOA {
			return r, true
		}
	}

	return Record{}, false
}

// Serial returns the serial number of the zone's SOA record, or zero if the
// snapshot has none (an empty bootstrap snapshot).
func (s *Snapshot) Serial() uint32 {
	soa, ok := s.SOA()
	if !ok {
		return 0
	}

	serial, err := soa.SOASerial()
	if err != nil {
		return 0
	}

	return serial
}

// texts returns the set of normalized record texts in the snapshot.
func (s *Snapshot) texts() map[string]Record {
	set := make(map[string]Record, len(s.Records))
	for _, r := range s.Records {
		set[r.Text()] = r
	}

	return set
}
