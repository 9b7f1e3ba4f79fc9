package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zonekit/zonekit/internal/source"
	"github.com/zonekit/zonekit/internal/store"
	"github.com/zonekit/zonekit/internal/updater"
	"github.com/zonekit/zonekit/internal/zone"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push <zone> <edited-zonefile>",
	Short: "Diff an edited zone file against the stored snapshot and apply the changes",
	Long: `push normalizes the edited zone file, diffs it against the stored
canonical snapshot, submits the resulting instruction list through the
configured update channel and, on success, stores the new snapshot. A run
that detects no changes applies nothing and succeeds.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return setup(true)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		zoneName, editedPath := args[0], args[1]

		st, err := openStore()
		if err != nil {
			return err
		}

		oldSnap, err := loadStored(st, zoneName)
		if err != nil {
			return err
		}

		lines, err := source.File(editedPath)
		if err != nil {
			return err
		}

		newSnap, err := zone.Normalize(lines, zoneName)
		if err != nil {
			return err
		}

		changes, err := zone.Diff(oldSnap, newSnap)
		if err != nil {
			return err
		}

		if changes.Empty() {
			log.Info().Str("zone", changes.Origin).Msg("zone unchanged, nothing to apply")

			return nil
		}

		channel, err := updater.New(&cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Updates.Timeout)*time.Second)
		defer cancel()

		if err := channel.Apply(ctx, changes); err != nil {
			// Nothing is assumed applied; the stored snapshot stays as it was.
			return err
		}

		zone.Sort(changes.New)

		return st.Save(changes.Origin, changes.Serial, zone.Render(changes.New))
	},
}

// loadStored reads and re-normalizes the stored snapshot, or returns an
// empty snapshot when the zone has never been pushed before.
func loadStored(st store.Store, zoneName string) (*zone.Snapshot, error) {
	content, err := st.Load(zoneName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &zone.Snapshot{Origin: zone.Fqdn(zoneName)}, nil
		}

		return nil, err
	}

	return zone.Normalize(strings.Split(content, "\n"), zoneName)
}
