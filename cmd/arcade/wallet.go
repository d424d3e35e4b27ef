package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show points and purchased bonuses",
	Long: `Display the wallet balance, the extra moves and time every new game
starts with, and recent purchases.

Examples:
  arcade wallet
  arcade wallet --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runWallet,
}

func runWallet(_ *cobra.Command, _ []string) error {
	store, w, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	b, err := w.Balance()
	if err != nil {
		return fmt.Errorf("reading wallet: %w", err)
	}

	fmt.Println("Wallet")
	fmt.Println()
	fmt.Printf("  Points:       %d\n", b.Points)
	fmt.Printf("  Extra moves:  %d\n", b.ExtraMoves)
	fmt.Printf("  Extra time:   %s\n", time.Duration(b.ExtraSeconds)*time.Second)

	purchases, err := w.Purchases(10)
	if err != nil {
		return fmt.Errorf("reading purchases: %w", err)
	}
	if len(purchases) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent purchases:")
	fmt.Printf("  %-12s  %-8s  %s\n", "Item", "Price", "Date")
	fmt.Printf("  %-12s  %-8s  %s\n", "----", "-----", "----")
	for _, p := range purchases {
		fmt.Printf("  %-12s  %-8d  %s\n", p.ItemID, p.Price, p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
