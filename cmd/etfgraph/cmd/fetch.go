package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <symbol>",
	Short: "Print the latest daily close for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	_, tl, tr, err := openApp()
	if err != nil {
		return err
	}
	defer tl.Close()

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	q, err := tr.LatestPrice(cmd.Context(), symbol)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", symbol, err)
	}

	fmt.Printf("%s latest close (%s): %.2f USD\n", q.Symbol, q.Day, q.Close)
	return nil
}
