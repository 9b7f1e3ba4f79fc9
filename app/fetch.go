package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zonekit/zonekit/internal/db"
	"github.com/zonekit/zonekit/internal/source"
	"github.com/zonekit/zonekit/internal/zone"
)

func init() { //nolint: gochecknoinits
	fetchCmd.Flags().StringVar(&fetchServer, "server", "", "Name server to transfer the zone from (host:port)")
	fetchCmd.Flags().BoolVar(&fetchFromDB, "from-db", false, "Read the zone from the name server's SQL database instead")
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "Store the canonical snapshot after fetching")

	rootCmd.AddCommand(fetchCmd)
}

var (
	fetchServer string
	fetchFromDB bool
	fetchSave   bool

	fetchCmd = &cobra.Command{
		Use:   "fetch <zone>",
		Short: "Acquire a zone and print its canonical rendering",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return setup(true)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			zoneName := args[0]

			lines, err := fetchLines(zoneName)
			if err != nil {
				return err
			}

			snap, err := zone.Normalize(lines, zoneName)
			if err != nil {
				return err
			}

			zone.Sort(snap)

			out := zone.Render(snap)

			if fetchSave {
				st, err := openStore()
				if err != nil {
					return err
				}

				if err := st.Save(snap.Origin, snap.Serial(), out); err != nil {
					return err
				}
			}

			fmt.Print(out)

			return nil
		},
	}
)

func fetchLines(zoneName string) ([]string, error) {
	if fetchFromDB {
		gdb, err := db.Open(&cfg)
		if err != nil {
			return nil, err
		}

		return source.NewSQL(gdb).Lines(zoneName)
	}

	server := fetchServer
	if server == "" {
		server = cfg.Updates.Server
	}

	axfr := &source.AXFR{Server: server, Timeout: time.Duration(cfg.Updates.Timeout) * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Duration(cfg.Updates.Timeout)*time.Second)
	defer cancel()

	return axfr.Lines(ctx, zoneName)
}
