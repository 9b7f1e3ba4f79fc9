// Package updater delivers the differ's instruction list to a name server,
// either as an RFC 2136 dynamic-update transaction or through the PowerDNS
// HTTP API. The underlying channel is assumed atomic: on failure nothing is
// treated as applied.
package updater

import (
	"context"
	"errors"
	"time"

	"github.com/joeig/go-powerdns/v3"

	"github.com/zonekit/zonekit/internal/config"
	"github.com/zonekit/zonekit/internal/zone"
)

var (
	// ErrUpdateChannel is returned when the update mechanism rejected or
	// could not deliver the instruction list.
	ErrUpdateChannel = errors.New("update channel failed")

	// ErrNoChannel is returned when no update mode is configured.
	ErrNoChannel = errors.New("no update channel configured (updates.mode)")
)

// Channel applies a reconciled change set to a name server as one
// transaction.
type Channel interface {
	Apply(ctx context.Context, changes *zone.Changes) error
}

// New builds the configured update channel.
func New(cfg *config.Config) (Channel, error) {
	timeout := time.Duration(cfg.Updates.Timeout) * time.Second

	switch cfg.Updates.Mode {
	case "rfc2136":
		return &RFC2136{
			Server:        cfg.Updates.Server,
			TSIGName:      cfg.Updates.TSIGName,
			TSIGSecret:    cfg.Updates.TSIGSecret,
			TSIGAlgorithm: cfg.Updates.TSIGAlgorithm,
			Timeout:       timeout,
		}, nil
	case "pdns":
		client := powerdns.New(cfg.PDNS.URL, cfg.PDNS.VHost, powerdns.WithAPIKey(cfg.PDNS.APIKey))

		return &PDNS{client: client}, nil
	default:
		return nil, ErrNoChannel
	}
}
