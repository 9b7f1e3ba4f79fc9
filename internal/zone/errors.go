package zone

import (
	"errors"
)

var (
	// ErrMalformedRecord is returned when a line does not match any known
	// record grammar. Callers skip the line with a warning; it only becomes
	// fatal when nothing usable remains.
	ErrMalformedRecord = errors.New("line does not match any known record grammar")

	// ErrMissingDefaultTTL is returned when a record omits its TTL and
	// neither a $TTL directive nor an SOA minimum field is available.
	ErrMissingDefaultTTL = errors.New("record has no TTL and no default TTL can be resolved")

	// ErrMissingOrigin is returned when a relative name needs qualification
	// but no origin is known.
	ErrMissingOrigin = errors.New("relative name with no origin in scope")

	// ErrEmptyResult is returned when normalization produced zero usable
	// records. A zone is never overwritten with nothing.
	ErrEmptyResult = errors.New("normalization produced no usable records")

	// ErrNoSOA is returned when a snapshot that must carry an SOA record
	// does not contain exactly one.
	ErrNoSOA = errors.New("snapshot does not contain exactly one SOA record")

	// ErrNotSOA is returned when SOA field access is attempted on a record
	// that is not a well-formed SOA.
	ErrNotSOA = errors.New("record is not a well-formed SOA")

	// errTTLRedefined signals a $TTL line after the default TTL was already
	// set. The extra directive is ignored; the default TTL is fixed per zone.
	errTTLRedefined = errors.New("default TTL already set")
)
