package zone

import (
	"strconv"
	"strings"
)

const tabWidth = 8

// columns in one rendered row: name, ttl, class, type, rdata.
const renderColumns = 5

// Render turns a canonically sorted snapshot into aligned zone-file text.
// The output opens with explicit $ORIGIN and $TTL lines so the file is
// self-contained regardless of how the input expressed its defaults, and it
// round-trips through Normalize to an equivalent record set.
//
// Rendering is a read-only projection: the blanking of repeated fields
// happens on the output rows only and never leaks back into the record
// texts used for diffing.
func Render(s *Snapshot) string {
	var b strings.Builder

	if s.Origin != "" {
		b.WriteString("$ORIGIN ")
		b.WriteString(s.Origin)
		b.WriteString("\n")
	}

	if s.DefaultTTL != 0 {
		b.WriteString("$TTL ")
		b.WriteString(strconv.FormatUint(uint64(s.DefaultTTL), 10))
		b.WriteString("\n")
	}

	rows := blankRows(s)
	widths := columnWidths(rows)

	for _, row := range rows {
		b.WriteString(row[0])
		b.WriteString(firstGap(len(row[0]), widths[0]+1))

		for col := 1; col < renderColumns-1; col++ {
			b.WriteString(row[col])
			b.WriteString(strings.Repeat(" ", widths[col]+1-len(row[col])))
		}

		b.WriteString(row[renderColumns-1])
		b.WriteString("\n")
	}

	return b.String()
}

// blankRows projects the records into display rows, blanking the name, TTL
// and class columns where they repeat the previous line. The TTL is only
// blanked when it additionally equals the zone's declared default, so an
// explicit non-default TTL is never hidden; a change of owner name breaks
// the blanking chain entirely.
func blankRows(s *Snapshot) [][renderColumns]string {
	rows := make([][renderColumns]string, 0, len(s.Records))

	var prev Record

	for i, r := range s.Records {
		row := [renderColumns]string{
			displayName(r.Name, s.Origin),
			strconv.FormatUint(uint64(r.TTL), 10),
			r.Class,
			r.Type,
			r.Rdata(),
		}

		if i > 0 && r.Name == prev.Name {
			row[0] = ""

			if r.TTL == prev.TTL && r.TTL == s.DefaultTTL {
				row[1] = ""
			}

			if r.Class == prev.Class {
				row[2] = ""
			}
		}

		rows = append(rows, row)
		prev = r
	}

	return rows
}

// columnWidths returns the maximum width per column after blanking.
func columnWidths(rows [][renderColumns]string) [renderColumns]int {
	var widths [renderColumns]int

	for _, row := range rows {
		for col, field := range row {
			if len(field) > widths[col] {
				widths[col] = len(field)
			}
		}
	}

	return widths
}

// displayName shortens a fully qualified owner name relative to the origin:
// the apex renders as @, names under the origin lose the suffix, everything
// else stays fully qualified.
func displayName(name, origin string) string {
	if origin == "" {
		return name
	}

	if name == origin {
		return "@"
	}

	if stripped, ok := strings.CutSuffix(name, "."+origin); ok {
		return stripped
	}

	return name
}

// firstGap renders the whitespace run between the name column and the TTL
// column using tab characters wherever a tab lands exactly on the needed
// visual position under 8-column tab stops, falling back to spaces. A tab
// placed in the 7th column is rendered inconsistently by some terminals, so
// that one position always gets a space.
func firstGap(pos, target int) string {
	var b strings.Builder

	for {
		next := (pos/tabWidth + 1) * tabWidth
		if next > target {
			break
		}

		if pos == 6 {
			b.WriteByte(' ')
			pos++

			continue
		}

		b.WriteByte('\t')

		pos = next
	}

	for pos < target {
		b.WriteByte(' ')
		pos++
	}

	return b.String()
}
