package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zonekit/zonekit/internal/source"
	"github.com/zonekit/zonekit/internal/zone"
)

func init() { //nolint: gochecknoinits
	fmtCmd.Flags().StringVar(&fmtOrigin, "origin", "", "Zone origin for unqualified names (overridden by $ORIGIN)")
	fmtCmd.Flags().BoolVar(&fmtWrite, "write", false, "Rewrite the zone file in place")

	rootCmd.AddCommand(fmtCmd)
}

var (
	fmtOrigin string
	fmtWrite  bool

	fmtCmd = &cobra.Command{
		Use:   "fmt <zonefile>",
		Short: "Normalize and canonically render a zone file",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return setup(false)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			lines, err := source.File(args[0])
			if err != nil {
				return err
			}

			snap, err := zone.Normalize(lines, fmtOrigin)
			if err != nil {
				return err
			}

			zone.Sort(snap)

			out := zone.Render(snap)

			if fmtWrite {
				return os.WriteFile(args[0], []byte(out), 0o644)
			}

			fmt.Print(out)

			return nil
		},
	}
)
