package zone

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Context carries the directive state ($ORIGIN, $TTL) a record is normalized
// under. It is passed explicitly to every parsing step; there is no ambient
// or global directive state.
type Context struct {
	Origin     string // fully qualified, dot-terminated; empty if unknown
	DefaultTTL uint32 // most recently seen $TTL value
	HasTTL     bool
}

// typeRE matches resource-record type mnemonics, including RFC 3597
// TYPEnnnn names.
var typeRE = regexp.MustCompile(`^[A-Z][A-Z0-9-]*$`)

// opaqueTypeRE matches RFC 3597 TYPEnnnn mnemonics, which are carried
// through opaquely without rdata validation.
var opaqueTypeRE = regexp.MustCompile(`^TYPE\d+$`)

// sourceLine is one logical record line after comment stripping and
// parenthesized-group joining, tagged with the physical line it started on.
type sourceLine struct {
	num  int
	text string
}

// Normalize consumes raw zone-file lines (records plus $ORIGIN/$TTL
// directives) and produces a snapshot of fully specified records. Lines that
// match no known record grammar are skipped with a warning; an empty result,
// an unresolvable relative name or an unresolvable default TTL abort the
// pass.
func Normalize(lines []string, origin string) (*Snapshot, error) {
	ctx := Context{}
	if origin != "" {
		ctx.Origin = Fqdn(origin)
	}

	var (
		records   []Record
		pending   []int // indices of records still waiting for a default TTL
		prevName  string
		headerTTL uint32
		hasHeader bool
		skipped   int
	)

	for _, ln := range assemble(lines) {
		trimmed := strings.TrimSpace(ln.text)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "$") {
			switch err := ctx.directive(trimmed); {
			case errors.Is(err, errTTLRedefined):
				log.Warn().Int("line", ln.num).Str("text", trimmed).Msg("ignoring extra $TTL, the default TTL is fixed per zone")
			case err != nil:
				log.Warn().Int("line", ln.num).Str("text", trimmed).Msg("skipping unparseable directive")
				skipped++
			case ctx.HasTTL && !hasHeader:
				headerTTL, hasHeader = ctx.DefaultTTL, true
			}

			continue
		}

		rec, hasTTL, err := parseRecord(ln.text, &ctx, prevName)
		if err != nil {
			if errors.Is(err, ErrMissingOrigin) {
				return nil, pkgerrors.Wrapf(err, "line %d", ln.num)
			}

			log.Warn().Int("line", ln.num).Err(err).Str("text", trimmed).Msg("skipping unparseable record")
			skipped++

			continue
		}

		prevName = rec.Name

		if !hasTTL {
			pending = append(pending, len(records))
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	snap := &Snapshot{Records: records}

	// The SOA record anchors the zone: its owner is the authoritative
	// origin and its minimum field is the TTL fallback of last resort.
	soa, hasSOA := snap.SOA()

	snap.Origin = ctx.Origin
	if hasSOA {
		snap.Origin = soa.Name
	}

	soaMin, hasSOAMin := soa.soaMinimum()

	switch {
	case hasHeader:
		snap.DefaultTTL = headerTTL
	case hasSOAMin:
		snap.DefaultTTL = soaMin
	}

	for _, i := range pending {
		switch {
		case hasSOAMin:
			records[i].TTL = soaMin
		case records[i].Type == TypeSOA:
			// An SOA with an unparseable minimum was already rejected by
			// the grammar check; nothing to fill in here.
		default:
			return nil, pkgerrors.Wrapf(ErrMissingDefaultTTL, "record %q", records[i].Name)
		}
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("records", len(records)).Msg("normalization skipped unusable lines")
	}

	return snap, nil
}

// directive applies a $ORIGIN or $TTL line to the context.
func (c *Context) directive(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ErrMalformedRecord
	}

	switch strings.ToUpper(fields[0]) {
	case "$ORIGIN":
		c.Origin = Fqdn(fields[1])
	case "$TTL":
		ttl, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return ErrMalformedRecord
		}

		if c.HasTTL {
			return errTTLRedefined
		}

		c.DefaultTTL = uint32(ttl)
		c.HasTTL = true
	default:
		return ErrMalformedRecord
	}

	return nil
}

// parseRecord turns one logical line into a Record. The returned bool
// reports whether the record's TTL is already resolved; records parsed
// before any TTL default is known are filled in by Normalize afterwards.
func parseRecord(line string, ctx *Context, prevName string) (Record, bool, error) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return Record{}, false, ErrMalformedRecord
	}

	var name string

	if line[0] == ' ' || line[0] == '\t' {
		// Standard continuation semantics: a blank owner field inherits
		// the owner of the immediately preceding record.
		if prevName == "" {
			return Record{}, false, ErrMalformedRecord
		}

		name = prevName
	} else {
		name, fields = fields[0], fields[1:]
	}

	// TTL and class are both optional and may appear in either order.
	var (
		ttl    uint32
		hasTTL bool
		class  string
	)

	for len(fields) > 0 {
		switch {
		case !hasTTL && isDigits(fields[0]):
			v, err := strconv.ParseUint(fields[0], 10, 32)
			if err != nil {
				return Record{}, false, ErrMalformedRecord
			}

			ttl, hasTTL = uint32(v), true
			fields = fields[1:]

			continue
		case class == "" && strings.EqualFold(fields[0], ClassIN):
			class = ClassIN
			fields = fields[1:]

			continue
		}

		break
	}

	if class == "" {
		class = ClassIN
	}

	if len(fields) < 2 {
		return Record{}, false, ErrMalformedRecord
	}

	rtype := strings.ToUpper(fields[0])
	if !typeRE.MatchString(rtype) {
		return Record{}, false, ErrMalformedRecord
	}

	data := append([]string(nil), fields[1:]...)

	qname, err := qualifyOwner(name, ctx.Origin)
	if err != nil {
		return Record{}, false, err
	}

	rec := Record{Name: qname, Class: class, Type: rtype, Data: data}

	if hasTTL {
		rec.TTL = ttl
	} else if ctx.HasTTL {
		rec.TTL = ctx.DefaultTTL
		hasTTL = true
	}

	if err := qualifyRdata(&rec, ctx.Origin); err != nil {
		return Record{}, false, err
	}

	if err := checkGrammar(rec); err != nil {
		return Record{}, false, err
	}

	return rec, hasTTL, nil
}

// qualifyRdata fully qualifies the name-valued rdata fields of the record
// types that carry them and quotes TXT payloads.
func qualifyRdata(rec *Record, origin string) error {
	switch rec.Type {
	case TypeSOA:
		if len(rec.Data) != 7 {
			return ErrMalformedRecord
		}

		for _, i := range []int{0, 1} {
			q, err := qualifyTarget(rec.Data[i], origin)
			if err != nil {
				return err
			}

			rec.Data[i] = q
		}
	case TypeNS, TypeCNAME, TypeMX, TypeSRV:
		last := len(rec.Data) - 1

		q, err := qualifyTarget(rec.Data[last], origin)
		if err != nil {
			return err
		}

		rec.Data[last] = q
	case TypeTXT, TypeSPF:
		quoted := ensureQuotedContent(rec.Type, rec.Rdata())
		rec.Data = splitFields(quoted)
	}

	return nil
}

// checkGrammar validates the record against the grammar of record types the
// wire library knows. RFC 3597 TYPEnnnn records are carried through
// opaquely; any other unrecognized mnemonic is rejected.
func checkGrammar(rec Record) error {
	if _, known := dns.StringToType[rec.Type]; !known {
		if opaqueTypeRE.MatchString(rec.Type) {
			return nil
		}

		return ErrMalformedRecord
	}

	if _, err := dns.NewRR(rec.Text()); err != nil {
		return ErrMalformedRecord
	}

	return nil
}

// Fqdn returns the name with a trailing dot.
func Fqdn(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name + "."
	}

	return name
}

// qualifyOwner fully qualifies a record owner name: @ resolves to the
// origin, * becomes the origin's wildcard, every other relative name gets
// the origin appended. Accidentally repeated origin suffixes (an admin
// writing host.example.com without the trailing dot) are collapsed.
func qualifyOwner(name, origin string) (string, error) {
	switch name {
	case "@":
		if origin == "" {
			return "", ErrMissingOrigin
		}

		return origin, nil
	case "*":
		if origin == "" {
			return "", ErrMissingOrigin
		}

		return "*." + origin, nil
	}

	if strings.HasSuffix(name, ".") {
		return collapseOrigin(name, origin), nil
	}

	if origin == "" {
		return "", ErrMissingOrigin
	}

	return collapseOrigin(name+"."+origin, origin), nil
}

// qualifyTarget qualifies a name-valued rdata field (NS/MX/CNAME/SRV target,
// SOA primary and mailbox). Administrators routinely omit the trailing dot
// here, so a relative target is qualified and then de-duplicated against the
// origin rather than rejected.
func qualifyTarget(target, origin string) (string, error) {
	if target == "@" {
		if origin == "" {
			return "", ErrMissingOrigin
		}

		return origin, nil
	}

	if strings.HasSuffix(target, ".") {
		return collapseOrigin(target, origin), nil
	}

	if origin == "" {
		return "", ErrMissingOrigin
	}

	return collapseOrigin(target+"."+origin, origin), nil
}

// collapseOrigin strips accidental repeated origin suffixes:
// host.example.com.example.com. becomes host.example.com. The inner
// occurrence must sit on a label boundary, so fooexample.com. under origin
// example.com. is left alone.
func collapseOrigin(name, origin string) string {
	if origin == "" {
		return name
	}

	for {
		prefix, ok := strings.CutSuffix(name, origin)
		if !ok {
			break
		}

		if prefix != origin && !strings.HasSuffix(prefix, "."+origin) {
			break
		}

		name = prefix
	}

	return name
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// splitFields splits a record line on whitespace, keeping quoted strings
// (with their quotes) intact as single fields.
func splitFields(s string) []string {
	var (
		fields  []string
		b       strings.Builder
		inQuote bool
		escaped bool
	)

	flush := func() {
		if b.Len() > 0 {
			fields = append(fields, b.String())
			b.Reset()
		}
	}

	for _, c := range s {
		switch {
		case escaped:
			b.WriteRune(c)

			escaped = false
		case c == '\\' && inQuote:
			b.WriteRune(c)

			escaped = true
		case c == '"':
			b.WriteRune(c)

			inQuote = !inQuote
		case !inQuote && (c == ' ' || c == '\t'):
			flush()
		default:
			b.WriteRune(c)
		}
	}

	flush()

	return fields
}

// assemble strips comments and joins parenthesized multi-line groups into
// single logical lines. A semicolon inside a quoted string is not a comment
// delimiter, and a semicolon inside a parenthesized group only comments out
// the rest of its physical line.
func assemble(lines []string) []sourceLine {
	var (
		out   []sourceLine
		b     strings.Builder
		depth int
		start int
	)

	for i, raw := range lines {
		stripped := stripLine(raw, &depth)

		if b.Len() == 0 {
			start = i + 1

			b.WriteString(stripped)
		} else {
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(stripped))
		}

		if depth > 0 {
			continue
		}

		out = append(out, sourceLine{num: start, text: b.String()})
		b.Reset()
	}

	if b.Len() > 0 {
		// Unbalanced parentheses at EOF; emit what we have and let the
		// record grammar reject it if it is unusable.
		out = append(out, sourceLine{num: start, text: b.String()})
	}

	return out
}

// stripLine removes the comment portion of one physical line and replaces
// parentheses (outside quoted strings) with spaces, tracking group depth
// across lines.
func stripLine(raw string, depth *int) string {
	var (
		b       strings.Builder
		inQuote bool
		escaped bool
	)

	for _, c := range raw {
		if escaped {
			b.WriteRune(c)

			escaped = false

			continue
		}

		switch {
		case c == '\\' && inQuote:
			b.WriteRune(c)

			escaped = true
		case c == '"':
			b.WriteRune(c)

			inQuote = !inQuote
		case c == ';' && !inQuote:
			return b.String()
		case c == '(' && !inQuote:
			*depth++

			b.WriteRune(' ')
		case c == ')' && !inQuote:
			if *depth > 0 {
				*depth--
			}

			b.WriteRune(' ')
		default:
			b.WriteRune(c)
		}
	}

	return b.String()
}
