package wallet

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/storage"
)

// ErrInsufficientPoints is returned when the balance does not cover a price.
var ErrInsufficientPoints = storage.ErrInsufficientPoints

// Store is the persistence the wallet needs. *storage.Store implements it.
type Store interface {
	Balance() (storage.Balance, error)
	AddPoints(n int64) (storage.Balance, error)
	AddMoves(n int) (storage.Balance, error)
	AddSeconds(n int) (storage.Balance, error)
	SpendPoints(n int64) (storage.Balance, error)
	RecordPurchase(itemID string, price int64, grant storage.Grant) (storage.Purchase, storage.Balance, error)
	IssueCoupon(c storage.Coupon) (storage.Coupon, storage.Balance, error)
	Purchases(limit int) ([]storage.Purchase, error)
	Coupons() ([]storage.Coupon, error)
}

var _ Store = (*storage.Store)(nil)

// Receipt is the result of a successful Buy.
type Receipt struct {
	Item    Item            `json:"item"`
	Balance storage.Balance `json:"balance"`
	Coupon  *storage.Coupon `json:"coupon,omitempty"`
}

// Wallet ties the catalog to persistent balances.
type Wallet struct {
	store   Store
	catalog *Catalog
	random  io.Reader // coupon code source; nil means crypto/rand
}

// New creates a wallet over store selling from catalog.
func New(store Store, catalog *Catalog) *Wallet {
	return &Wallet{store: store, catalog: catalog}
}

// Catalog returns the store catalog.
func (w *Wallet) Catalog() *Catalog {
	return w.catalog
}

// Balance returns the persisted wallet.
func (w *Wallet) Balance() (storage.Balance, error) {
	return w.store.Balance()
}

// Bonus returns the purchased extra moves and extra time a new session
// starts with.
func (w *Wallet) Bonus() (moves int, extra time.Duration, err error) {
	b, err := w.store.Balance()
	if err != nil {
		return 0, 0, err
	}
	return b.ExtraMoves, time.Duration(b.ExtraSeconds) * time.Second, nil
}

// AddPoints credits points earned in play.
func (w *Wallet) AddPoints(n int64) (storage.Balance, error) {
	return w.store.AddPoints(n)
}

// SpendPoints debits points, failing with ErrInsufficientPoints and no
// change when the balance is too low.
func (w *Wallet) SpendPoints(n int64) (storage.Balance, error) {
	return w.store.SpendPoints(n)
}

// AddMoves grants bonus moves outside a purchase.
func (w *Wallet) AddMoves(n int) (storage.Balance, error) {
	return w.store.AddMoves(n)
}

// AddTime grants bonus seconds outside a purchase.
func (w *Wallet) AddTime(seconds int) (storage.Balance, error) {
	return w.store.AddSeconds(seconds)
}

// Buy purchases a catalog item by ID.
func (w *Wallet) Buy(id string) (Receipt, error) {
	item, ok := w.catalog.Item(id)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	if item.Kind == KindCoupon {
		return w.buyCoupon(item)
	}

	_, balance, err := w.store.RecordPurchase(item.ID, item.Price, storage.Grant{
		Moves:   item.Moves,
		Seconds: item.Seconds,
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{Item: item, Balance: balance}, nil
}

// couponAttempts bounds retries when a generated code collides.
const couponAttempts = 3

func (w *Wallet) buyCoupon(item Item) (Receipt, error) {
	spec := w.catalog.Coupon()

	// Fail fast without burning random codes when the balance is short.
	b, err := w.store.Balance()
	if err != nil {
		return Receipt{}, err
	}
	if b.Points < spec.Price {
		return Receipt{}, ErrInsufficientPoints
	}

	var lastErr error
	for range couponAttempts {
		code, err := GenerateCouponCode(spec.Prefix, spec.Length, w.random)
		if err != nil {
			return Receipt{}, err
		}
		coupon, balance, err := w.store.IssueCoupon(storage.Coupon{
			Code:      code,
			Price:     spec.Price,
			FaceValue: spec.FaceValue.StringFixed(2),
			Currency:  spec.Currency,
		})
		if err == nil {
			return Receipt{Item: item, Balance: balance, Coupon: &coupon}, nil
		}
		if errors.Is(err, ErrInsufficientPoints) {
			return Receipt{}, err
		}
		lastErr = err
	}
	return Receipt{}, lastErr
}

// Purchases returns recent purchases, newest first.
func (w *Wallet) Purchases(limit int) ([]storage.Purchase, error) {
	return w.store.Purchases(limit)
}

// Coupons returns every issued coupon, newest first.
func (w *Wallet) Coupons() ([]storage.Coupon, error) {
	return w.store.Coupons()
}
