package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record, delete, or list buy/sell trade points",
	Long: `Manage trade points. One record exists per symbol and day; saving
again for the same day overwrites it.

Examples:
  etfgraph trade add --symbol GLD --date 2024-03-05 --action buy --quantity 2
  etfgraph trade rm --symbol GLD --date 2024-03-05
  etfgraph trade ls`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade point (fetches the current price)",
	RunE:  runTradeAdd,
}

var tradeRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a trade point",
	RunE:  runTradeRm,
}

var tradeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all trade points",
	Args:  cobra.NoArgs,
	RunE:  runTradeLs,
}

var (
	tradeSymbol   string
	tradeDate     string
	tradeAction   string
	tradeQuantity float64
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeRmCmd)
	tradeCmd.AddCommand(tradeLsCmd)

	tradeAddCmd.Flags().StringVarP(&tradeSymbol, "symbol", "s", "", "tracked symbol (required)")
	tradeAddCmd.Flags().StringVarP(&tradeDate, "date", "d", "", "trade date, e.g. 2024-03-05 (required)")
	tradeAddCmd.Flags().StringVarP(&tradeAction, "action", "a", "", "buy or sell (required)")
	tradeAddCmd.Flags().Float64VarP(&tradeQuantity, "quantity", "q", 0, "quantity (required)")
	tradeAddCmd.MarkFlagRequired("symbol")
	tradeAddCmd.MarkFlagRequired("date")
	tradeAddCmd.MarkFlagRequired("action")
	tradeAddCmd.MarkFlagRequired("quantity")

	tradeRmCmd.Flags().StringVarP(&tradeSymbol, "symbol", "s", "", "tracked symbol (required)")
	tradeRmCmd.Flags().StringVarP(&tradeDate, "date", "d", "", "trade date (required)")
	tradeRmCmd.MarkFlagRequired("symbol")
	tradeRmCmd.MarkFlagRequired("date")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	_, tl, tr, err := openApp()
	if err != nil {
		return err
	}
	defer tl.Close()

	symbol := strings.ToUpper(strings.TrimSpace(tradeSymbol))
	rec, err := tr.SaveTrade(cmd.Context(), symbol, tradeDate, tradeAction, tradeQuantity)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Saved %s %s x%.2f on %s at %.2f USD\n",
		rec.Action, rec.Symbol, rec.Quantity, rec.Day, rec.Price)
	return nil
}

func runTradeRm(cmd *cobra.Command, args []string) error {
	_, tl, tr, err := openApp()
	if err != nil {
		return err
	}
	defer tl.Close()

	symbol := strings.ToUpper(strings.TrimSpace(tradeSymbol))
	if err := tr.DeleteTrade(symbol, tradeDate); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted trade point %s %s\n", symbol, tradeDate)
	return nil
}

func runTradeLs(cmd *cobra.Command, args []string) error {
	_, tl, tr, err := openApp()
	if err != nil {
		return err
	}
	defer tl.Close()

	recs, err := tr.ListTrades()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no trade points recorded")
		return nil
	}

	for _, r := range recs {
		fmt.Printf("%s  %-5s %-4s x%-8.2f %.2f USD\n",
			r.Day, r.Symbol, r.Action, r.Quantity, r.Price)
	}
	return nil
}
