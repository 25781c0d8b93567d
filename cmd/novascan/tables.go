package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novascan/scanclient"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables the server offers for scanning",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := scanclient.Dial(flagAddr, 2*time.Second)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		c.SetRWTimeout(5 * time.Second)

		metas, err := c.ListTables(context.Background())
		if err != nil {
			return err
		}
		for _, m := range metas {
			fmt.Printf("%s (%d rows)\n", m.Name, m.NumRows)
			for _, col := range m.Columns {
				null := ""
				if col.Nullable {
					null = " NULL"
				}
				fmt.Printf("  %s %s%s\n", col.Name, col.Type, null)
			}
		}
		return nil
	},
}
