package updater

import (
	"context"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zonekit/zonekit/internal/zone"
)

// RFC2136 submits the instruction list as one dynamic-update transaction.
type RFC2136 struct {
	Server        string // host:port of the primary name server
	TSIGName      string
	TSIGSecret    string
	TSIGAlgorithm string
	Timeout       time.Duration
}

// Apply sends deletions and additions in one update message. The server
// applies the message atomically, so a failure leaves both snapshots
// unchanged from this side's point of view.
func (u *RFC2136) Apply(ctx context.Context, changes *zone.Changes) error {
	m := new(dns.Msg)
	m.SetUpdate(dns.Fqdn(changes.Origin))

	deletions, err := toRRs(changes.Deletions)
	if err != nil {
		return err
	}

	additions, err := toRRs(changes.Additions)
	if err != nil {
		return err
	}

	// Deletions must precede additions within the transaction so that a
	// type change on the same name does not collide with stale data.
	m.Remove(deletions)
	m.Insert(additions)

	c := &dns.Client{Net: "tcp", Timeout: u.Timeout}

	if u.TSIGName != "" {
		keyName := dns.Fqdn(u.TSIGName)
		m.SetTsig(keyName, dns.Fqdn(u.TSIGAlgorithm), 300, time.Now().Unix())
		c.TsigSecret = map[string]string{keyName: u.TSIGSecret}
	}

	r, _, err := c.ExchangeContext(ctx, m, u.Server)
	if err != nil {
		return errors.Wrapf(ErrUpdateChannel, "exchange with %s: %v", u.Server, err)
	}

	if r.Rcode != dns.RcodeSuccess {
		return errors.Wrapf(ErrUpdateChannel, "server %s answered %s", u.Server, dns.RcodeToString[r.Rcode])
	}

	log.Info().Str("zone", changes.Origin).Str("server", u.Server).
		Int("deletions", len(changes.Deletions)).Int("additions", len(changes.Additions)).
		Uint32("serial", changes.Serial).Msg("dynamic update accepted")

	return nil
}

// toRRs parses normalized record texts into wire records.
func toRRs(records []zone.Record) ([]dns.RR, error) {
	rrs := make([]dns.RR, 0, len(records))

	for _, r := range records {
		rr, err := dns.NewRR(r.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "record %q is not expressible on the wire", r.Text())
		}

		rrs = append(rrs, rr)
	}

	return rrs, nil
}
