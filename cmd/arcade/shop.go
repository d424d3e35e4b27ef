package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/wallet"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend points on moves, time and coupons",
	Long: `Browse the store and spend wallet points.

Extra moves and extra time are permanent: every new game starts with them.

Examples:
  arcade shop list
  arcade shop buy moves-10
  arcade shop buy coupon
  arcade shop coupons`,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List store items",
	Args:  cobra.NoArgs,
	RunE:  runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Buy an item by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

var shopCouponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "List issued coupons",
	Args:  cobra.NoArgs,
	RunE:  runShopCoupons,
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopCouponsCmd)
}

func runShopList(_ *cobra.Command, _ []string) error {
	store, w, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	b, err := w.Balance()
	if err != nil {
		return fmt.Errorf("reading wallet: %w", err)
	}

	fmt.Printf("Store - you have %d points\n", b.Points)
	fmt.Println()
	fmt.Printf("  %-10s  %-9s  %s\n", "ID", "Price", "Item")
	fmt.Printf("  %-10s  %-9s  %s\n", "--", "-----", "----")
	for _, it := range w.Catalog().Items() {
		fmt.Printf("  %-10s  %-9d  %s\n", it.ID, it.Price, it.Label)
	}
	fmt.Println()
	fmt.Println("Run 'arcade shop buy <id>' to purchase.")
	return nil
}

func runShopBuy(_ *cobra.Command, args []string) error {
	store, w, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	receipt, err := w.Buy(args[0])
	switch {
	case errors.Is(err, wallet.ErrUnknownItem):
		return fmt.Errorf("unknown item %q, run 'arcade shop list' to see items", args[0])
	case errors.Is(err, wallet.ErrInsufficientPoints):
		b, _ := w.Balance()
		item, _ := w.Catalog().Item(args[0])
		return fmt.Errorf("not enough points: %s costs %d, you have %d", item.ID, item.Price, b.Points)
	case err != nil:
		return fmt.Errorf("purchase failed: %w", err)
	}

	fmt.Printf("Bought %s (%s) for %d points.\n", receipt.Item.ID, receipt.Item.Label, receipt.Item.Price)
	if receipt.Coupon != nil {
		fmt.Printf("Coupon code: %s (%s %s)\n", receipt.Coupon.Code, receipt.Coupon.FaceValue, receipt.Coupon.Currency)
	}
	fmt.Printf("Points left: %d\n", receipt.Balance.Points)
	return nil
}

func runShopCoupons(_ *cobra.Command, _ []string) error {
	store, w, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	coupons, err := w.Coupons()
	if err != nil {
		return fmt.Errorf("reading coupons: %w", err)
	}
	if len(coupons) == 0 {
		fmt.Println("No coupons yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-14s  %s\n", "Code", "Value", "Issued")
	fmt.Printf("  %-14s  %-14s  %s\n", "----", "-----", "------")
	for _, c := range coupons {
		value := c.FaceValue + " " + c.Currency
		fmt.Printf("  %-14s  %-14s  %s\n", c.Code, value, c.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
