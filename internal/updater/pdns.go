package updater

import (
	"context"

	"github.com/joeig/go-powerdns/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zonekit/zonekit/internal/zone"
)

// PDNS submits the change set through the PowerDNS HTTP API. The API
// patches whole RRsets rather than individual records, so the instruction
// list is regrouped per (name, type) pair against the new snapshot.
type PDNS struct {
	client *powerdns.Client
}

// rrsetPatch is the PowerDNS-shaped form of one touched (name, type) pair.
// An empty Content means the whole RRset disappears.
type rrsetPatch struct {
	Name    string
	Type    string
	TTL     uint32
	Content []string
}

// Apply patches every touched RRset. PowerDNS applies each PATCH request
// atomically; a failure is reported without assuming partial application.
func (u *PDNS) Apply(ctx context.Context, changes *zone.Changes) error {
	for _, patch := range rrsetPatches(changes) {
		var err error

		if len(patch.Content) == 0 {
			err = u.client.Records.Delete(ctx, changes.Origin, patch.Name, powerdns.RRType(patch.Type))
		} else {
			err = u.client.Records.Change(ctx, changes.Origin, patch.Name,
				powerdns.RRType(patch.Type), patch.TTL, patch.Content)
		}

		if err != nil {
			return errors.Wrapf(ErrUpdateChannel, "rrset %s/%s: %v", patch.Name, patch.Type, err)
		}
	}

	log.Info().Str("zone", changes.Origin).Uint32("serial", changes.Serial).
		Msg("PowerDNS API update accepted")

	return nil
}

// rrsetPatches regroups the ordered instruction list into RRset patches.
// Deletions come first in the instruction list, so RRsets that vanish
// entirely are patched before RRsets that gain content, preserving the
// differ's delete-before-add ordering for type changes on one name.
func rrsetPatches(changes *zone.Changes) []rrsetPatch {
	type key struct {
		name  string
		rtype string
	}

	var order []key

	seen := make(map[key]bool)

	for _, in := range changes.Instructions() {
		k := key{name: in.Record.Name, rtype: in.Record.Type}
		if !seen[k] {
			seen[k] = true

			order = append(order, k)
		}
	}

	patches := make([]rrsetPatch, 0, len(order))

	for _, k := range order {
		patch := rrsetPatch{Name: k.name, Type: k.rtype}

		for _, r := range changes.New.Records {
			if r.Name != k.name || r.Type != k.rtype {
				continue
			}

			patch.TTL = r.TTL
			patch.Content = append(patch.Content, r.Rdata())
		}

		patches = append(patches, patch)
	}

	return patches
}
