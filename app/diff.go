package app

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zonekit/zonekit/internal/source"
	"github.com/zonekit/zonekit/internal/zone"
)

func init() { //nolint: gochecknoinits
	diffCmd.Flags().StringVar(&diffOrigin, "origin", "", "Zone origin for unqualified names (overridden by $ORIGIN)")

	rootCmd.AddCommand(diffCmd)
}

var (
	diffOrigin string

	diffCmd = &cobra.Command{
		Use:   "diff <old-zonefile> <new-zonefile>",
		Short: "Print the add/delete instruction list between two snapshots",
		Long: `diff normalizes both zone files, reconciles the SOA serial and prints
the minimal instruction list a dynamic-update transaction would apply,
deletions first. No output means the snapshots are equivalent.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return setup(false)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			oldSnap, err := normalizeFile(args[0])
			if err != nil {
				return err
			}

			newSnap, err := normalizeFile(args[1])
			if err != nil {
				return err
			}

			changes, err := zone.Diff(oldSnap, newSnap)
			if err != nil {
				return err
			}

			if changes.Empty() {
				log.Info().Str("zone", changes.Origin).Msg("snapshots are equivalent, nothing to apply")

				return nil
			}

			for _, in := range changes.Instructions() {
				fmt.Printf("%s %s\n", in.Op, in.Record.Text())
			}

			return nil
		},
	}
)

func normalizeFile(path string) (*zone.Snapshot, error) {
	lines, err := source.File(path)
	if err != nil {
		return nil, err
	}

	return zone.Normalize(lines, diffOrigin)
}
