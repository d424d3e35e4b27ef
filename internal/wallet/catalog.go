// Package wallet implements the player's points wallet and the store where
// points buy bonus moves, bonus time and coupons.
package wallet

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/tile-arcade/internal/config"
)

// ErrUnknownItem is returned when buying an item the catalog does not list.
var ErrUnknownItem = errors.New("wallet: unknown item")

// ItemKind groups catalog items by what they grant.
type ItemKind string

const (
	KindMoves  ItemKind = "moves"
	KindTime   ItemKind = "time"
	KindCoupon ItemKind = "coupon"
)

// CouponItemID is the catalog ID of the coupon exchange.
const CouponItemID = "coupon"

// Item is one purchasable catalog entry.
type Item struct {
	ID      string   `json:"id"`
	Kind    ItemKind `json:"kind"`
	Price   int64    `json:"price"`
	Moves   int      `json:"moves,omitempty"`
	Seconds int      `json:"seconds,omitempty"`
	Label   string   `json:"label"`
}

// CouponSpec describes the coupons the store issues.
type CouponSpec struct {
	Price     int64
	FaceValue decimal.Decimal
	Currency  string
	Prefix    string
	Length    int
}

// FaceValueString formats the coupon value with two decimals and currency.
func (c CouponSpec) FaceValueString() string {
	return c.FaceValue.StringFixed(2) + " " + c.Currency
}

// Catalog is the ordered list of store items.
type Catalog struct {
	items  []Item
	byID   map[string]Item
	coupon CouponSpec
}

// NewCatalog builds a catalog from shop configuration: move packs, then time
// packs, then the coupon.
func NewCatalog(cfg config.ShopConfig) (*Catalog, error) {
	face, err := decimal.NewFromString(cfg.Coupon.FaceValue)
	if err != nil {
		return nil, fmt.Errorf("wallet: coupon face value: %w", err)
	}

	c := &Catalog{
		byID: make(map[string]Item),
		coupon: CouponSpec{
			Price:     int64(cfg.Coupon.Price),
			FaceValue: face,
			Currency:  cfg.Coupon.Currency,
			Prefix:    cfg.Coupon.Prefix,
			Length:    cfg.Coupon.Length,
		},
	}
	for _, p := range cfg.MovePacks {
		c.add(Item{
			ID:    p.ID,
			Kind:  KindMoves,
			Price: int64(p.Price),
			Moves: p.Amount,
			Label: fmt.Sprintf("+%d moves", p.Amount),
		})
	}
	for _, p := range cfg.TimePacks {
		c.add(Item{
			ID:      p.ID,
			Kind:    KindTime,
			Price:   int64(p.Price),
			Seconds: p.Amount,
			Label:   "+" + formatDuration(time.Duration(p.Amount)*time.Second),
		})
	}
	c.add(Item{
		ID:    CouponItemID,
		Kind:  KindCoupon,
		Price: c.coupon.Price,
		Label: "Coupon worth " + c.coupon.FaceValueString(),
	})
	return c, nil
}

func (c *Catalog) add(it Item) {
	c.items = append(c.items, it)
	c.byID[it.ID] = it
}

// Items returns every item in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up an item by ID.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Coupon returns the coupon specification.
func (c *Catalog) Coupon() CouponSpec {
	return c.coupon
}

// formatDuration renders whole hours or minutes compactly: 1h, 30m, 90s.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return fmt.Sprintf("%ds", d/time.Second)
	}
}
