package source

import (
	"context"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AXFR acquires a zone from a name server via zone transfer, falling back
// to an ANY query at the apex when the server refuses transfers.
type AXFR struct {
	Server  string // host:port of the name server
	Timeout time.Duration
}

// Lines transfers the zone and returns its records as raw text lines
// suitable for the normalizer.
func (a *AXFR) Lines(ctx context.Context, zone string) ([]string, error) {
	fqdn := dns.Fqdn(zone)

	m := new(dns.Msg)
	m.SetAxfr(fqdn)

	t := &dns.Transfer{
		DialTimeout:  a.Timeout,
		ReadTimeout:  a.Timeout,
		WriteTimeout: a.Timeout,
	}

	envelopes, err := t.In(m, a.Server)
	if err != nil {
		log.Warn().Str("zone", fqdn).Str("server", a.Server).Err(err).
			Msg("zone transfer failed, falling back to ANY query")

		return a.anyFallback(ctx, fqdn)
	}

	var lines []string

	for envelope := range envelopes {
		if envelope.Error != nil {
			return nil, errors.Wrap(envelope.Error, "zone transfer failed")
		}

		for _, rr := range envelope.RR {
			lines = append(lines, rr.String())
		}
	}

	// An AXFR answer carries the SOA twice, opening and closing the
	// stream; the duplicate collapses in the diff's set semantics, so the
	// lines are handed over as-is.
	if len(lines) == 0 {
		return a.anyFallback(ctx, fqdn)
	}

	return lines, nil
}

// anyFallback queries the zone apex for ANY, which some servers answer even
// when transfers are refused. The result is a partial view; callers that
// need authority should fix the server's transfer ACL instead.
func (a *AXFR) anyFallback(ctx context.Context, fqdn string) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(fqdn, dns.TypeANY)

	c := &dns.Client{Net: "tcp", Timeout: a.Timeout}

	r, _, err := c.ExchangeContext(ctx, m, a.Server)
	if err != nil {
		return nil, errors.Wrap(err, "ANY fallback query failed")
	}

	var lines []string

	for _, rr := range r.Answer {
		lines = append(lines, rr.String())
	}

	return lines, nil
}
