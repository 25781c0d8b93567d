package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novascan/internal"
	"github.com/tuannm99/novascan/internal/record"
	"github.com/tuannm99/novascan/internal/tablestore"
	"github.com/tuannm99/novascan/server/scanwire"
)

var (
	flagConfig string
	flagDemo   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a scan server",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := scanwire.ServerConfig{Addr: flagAddr}
		if flagConfig != "" {
			cfg, err := internal.LoadConfig(flagConfig)
			if err != nil {
				return err
			}
			sc.Addr = cfg.Server.Addr
			sc.Debug = cfg.Server.Debug
			sc.BatchSize = cfg.Scan.BatchSize
			sc.Compress = cfg.Scan.Compression
		}

		store := tablestore.NewStore()
		if flagDemo {
			if err := seedDemo(store); err != nil {
				return err
			}
		}
		return scanwire.Run(sc, store)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "path to yaml config (overrides --addr)")
	serveCmd.Flags().BoolVar(&flagDemo, "demo", false, "seed an events demo table")
}

func seedDemo(store *tablestore.Store) error {
	tbl, err := store.CreateTable("events", record.Schema{
		Cols: []record.Column{
			{Name: "id", Type: record.ColInt64},
			{Name: "kind", Type: record.ColUint8},
			{Name: "payload", Type: record.ColString, Nullable: true},
		},
	})
	if err != nil {
		return err
	}
	for i := 0; i < 1000; i++ {
		var payload any = fmt.Sprintf("demo event %d", i)
		if i%10 == 9 {
			payload = nil
		}
		if err := tbl.Append([]any{int64(i), uint8(i % 4), payload}); err != nil {
			return err
		}
	}
	return nil
}
