package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagAddr string

var rootCmd = &cobra.Command{
	Use:   "novascan",
	Short: "Columnar scan server and client",
	Long: `novascan serves and scans columnar row batches over a simple TCP protocol.

Examples:
  novascan serve --addr :8866 --demo
  novascan tables --addr 127.0.0.1:8866
  novascan scan events --addr 127.0.0.1:8866 --batch-size 256`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "127.0.0.1:8866", "server address")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(scanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
