package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novascan/scanclient"
)

var flagBatchSize int

var scanCmd = &cobra.Command{
	Use:   "scan <table>",
	Short: "Stream a table and print every row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := scanclient.Dial(flagAddr, 2*time.Second)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		c.SetRWTimeout(30 * time.Second)

		ctx := context.Background()
		sc, err := c.OpenScanner(ctx, args[0], flagBatchSize)
		if err != nil {
			return err
		}
		defer func() { _ = sc.Close(ctx) }()

		total := 0
		for sc.HasMore() {
			it, err := sc.NextRows(ctx)
			if err != nil {
				return err
			}
			for it.Next() {
				fmt.Println(it.Row().DebugString())
				total++
			}
		}
		fmt.Printf("%d rows\n", total)
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "rows per batch (0 = server default)")
}
