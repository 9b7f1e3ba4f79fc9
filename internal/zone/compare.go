package zone

import (
	"sort"
	"strings"
)

// typePriorities fixes the display order of record types sharing one owner
// name. Types not listed rank after all listed types, tied with each other.
var typePriorities = map[string]int{
	TypeSOA:   0,
	TypeA:     1,
	TypeAAAA:  2,
	TypeCNAME: 3,
	TypeDNAME: 4,
	TypeNS:    5,
	TypeMX:    6,
	TypeTXT:   7,
	TypeTLSA:  8,
	TypeSSHFP: 9,
}

const unknownTypePriority = 10

// sortContext carries the per-zone state the comparator needs: the origin
// (for apex and in-zone checks) and the set of (type, rdata) pairs owned by
// wildcard names, used to push redundant copies of a wildcard's effect to
// the bottom.
type sortContext struct {
	origin   string
	wildcard map[string]bool
}

func newSortContext(s *Snapshot) *sortContext {
	ctx := &sortContext{origin: s.Origin, wildcard: make(map[string]bool)}

	for _, r := range s.Records {
		if r.IsWildcard() {
			ctx.wildcard[wildcardKey(r)] = true
		}
	}

	return ctx
}

func wildcardKey(r Record) string { return r.Type + "\x00" + r.Rdata() }

// The comparator is a cascade of total-order key extractors combined
// lexicographically; each one is consulted only when all earlier ones tie.
// The resulting order is deliberately not a plain lexicographic sort: apex
// first, then wildcards, then ordinary hosts grouped by name, with noisy
// derived records (DKIM TXT, SRV, SSHFP) pushed towards the bottom so a
// human can scan the file top to bottom.

// sshfpRank sorts SSHFP records after everything else.
func sshfpRank(r Record) int {
	if r.Type == TypeSSHFP {
		return 1
	}

	return 0
}

// redundantRank sorts records whose (type, rdata) duplicates a wildcard's
// effect after their non-redundant counterparts. Such records are retained,
// not deduplicated.
func (c *sortContext) redundantRank(r Record) int {
	if !r.IsWildcard() && c.wildcard[wildcardKey(r)] {
		return 1
	}

	return 0
}

// apexRank sorts the zone apex first. The SOA record is the only type
// permitted at the apex in position one, so this also guarantees SOA-first.
func (c *sortContext) apexRank(r Record) int {
	if r.Name == c.origin {
		return 0
	}

	return 1
}

// wildcardRank sorts wildcard-owned records immediately after the apex.
func wildcardRank(r Record) int {
	if r.IsWildcard() {
		return 0
	}

	return 1
}

// domainKeyRank sorts DKIM TXT records near the end.
func domainKeyRank(r Record) int {
	if r.Type == TypeTXT && strings.Contains(r.Name, "_domainkey") {
		return 1
	}

	return 0
}

// srvRank sorts SRV records after the DKIM block.
func srvRank(r Record) int {
	if r.Type == TypeSRV {
		return 1
	}

	return 0
}

// underscoreRank sorts service-discovery style names (leading underscore)
// after ordinary names.
func underscoreRank(r Record) int {
	if strings.HasPrefix(r.Name, "_") {
		return 1
	}

	return 0
}

func typePriority(t string) int {
	if p, ok := typePriorities[t]; ok {
		return p
	}

	return unknownTypePriority
}

// nsTargetRank orders NS records with in-zone targets before external ones.
func (c *sortContext) nsTargetRank(r Record) int {
	if r.Type != TypeNS || len(r.Data) == 0 {
		return 0
	}

	target := r.Data[len(r.Data)-1]
	if target == c.origin || strings.HasSuffix(target, "."+c.origin) {
		return 0
	}

	return 1
}

// nsParentKey groups NS targets by parent domain, then by hostname, by
// keying on the reversed last two labels of the target.
func nsParentKey(r Record) string {
	if r.Type != TypeNS || len(r.Data) == 0 {
		return ""
	}

	target := strings.TrimSuffix(r.Data[len(r.Data)-1], ".")

	labels := strings.Split(target, ".")
	if len(labels) < 2 {
		return target
	}

	return labels[len(labels)-1] + "." + labels[len(labels)-2]
}

// Compare is the canonical total order over records of one zone. It returns
// a negative number if a sorts before b, zero if they are indistinguishable
// and a positive number otherwise.
func (c *sortContext) Compare(a, b Record) int {
	intKeys := [][2]int{
		{sshfpRank(a), sshfpRank(b)},
		{c.redundantRank(a), c.redundantRank(b)},
		{c.apexRank(a), c.apexRank(b)},
		{wildcardRank(a), wildcardRank(b)},
		{domainKeyRank(a), domainKeyRank(b)},
		{srvRank(a), srvRank(b)},
		{underscoreRank(a), underscoreRank(b)},
	}

	for _, k := range intKeys {
		if k[0] != k[1] {
			return k[0] - k[1]
		}
	}

	if cmp := strings.Compare(a.Name, b.Name); cmp != 0 {
		return cmp
	}

	// Same owner name from here on.
	if pa, pb := typePriority(a.Type), typePriority(b.Type); pa != pb {
		return pa - pb
	}

	if ra, rb := c.nsTargetRank(a), c.nsTargetRank(b); ra != rb {
		return ra - rb
	}

	if cmp := strings.Compare(nsParentKey(a), nsParentKey(b)); cmp != 0 {
		return cmp
	}

	return strings.Compare(a.Text(), b.Text())
}

// Sort orders a snapshot's records canonically, in place. The order is a
// pure function of the snapshot's content, so any permutation of the same
// records sorts identically.
func Sort(s *Snapshot) {
	ctx := newSortContext(s)

	sort.SliceStable(s.Records, func(i, j int) bool {
		return ctx.Compare(s.Records[i], s.Records[j]) < 0
	})
}
