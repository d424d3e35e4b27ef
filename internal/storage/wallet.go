package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientPoints is returned when a debit exceeds the balance.
// The wallet is left unchanged.
var ErrInsufficientPoints = errors.New("storage: insufficient points")

// Balance is the persisted wallet: spendable points and the purchased
// bonuses every new session starts with.
type Balance struct {
	Points       int64     `json:"points"`
	ExtraMoves   int       `json:"extra_moves"`
	ExtraSeconds int       `json:"extra_seconds"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Grant is what a purchase adds to the wallet.
type Grant struct {
	Moves   int
	Seconds int
}

// Purchase is one recorded store transaction.
type Purchase struct {
	ID        int64     `json:"id"`
	ItemID    string    `json:"item_id"`
	Price     int64     `json:"price"`
	Moves     int       `json:"moves"`
	Seconds   int       `json:"seconds"`
	CreatedAt time.Time `json:"created_at"`
}

// Coupon is an issued redemption code.
type Coupon struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Price     int64     `json:"price"`
	FaceValue string    `json:"face_value"` // decimal string
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// Balance returns the current wallet.
func (s *Store) Balance() (Balance, error) {
	return readBalance(s.db)
}

func readBalance(q querier) (Balance, error) {
	var b Balance
	var updatedAt any
	err := q.QueryRow(
		"SELECT points, extra_moves, extra_seconds, updated_at FROM wallet WHERE id = 1",
	).Scan(&b.Points, &b.ExtraMoves, &b.ExtraSeconds, &updatedAt)
	if err != nil {
		return Balance{}, fmt.Errorf("storage: cannot read wallet: %w", err)
	}
	b.UpdatedAt = parseTime(updatedAt)
	return b, nil
}

// AddPoints credits n points. Negative amounts are rejected; use SpendPoints.
func (s *Store) AddPoints(n int64) (Balance, error) {
	if n < 0 {
		return Balance{}, fmt.Errorf("storage: cannot add %d points", n)
	}
	return s.updateWallet("points = points + ?", n)
}

// AddMoves adds n purchased bonus moves.
func (s *Store) AddMoves(n int) (Balance, error) {
	if n < 0 {
		return Balance{}, fmt.Errorf("storage: cannot add %d moves", n)
	}
	return s.updateWallet("extra_moves = extra_moves + ?", n)
}

// AddSeconds adds n purchased bonus seconds.
func (s *Store) AddSeconds(n int) (Balance, error) {
	if n < 0 {
		return Balance{}, fmt.Errorf("storage: cannot add %d seconds", n)
	}
	return s.updateWallet("extra_seconds = extra_seconds + ?", n)
}

// SpendPoints debits n points, or returns ErrInsufficientPoints without
// changing anything.
func (s *Store) SpendPoints(n int64) (Balance, error) {
	var b Balance
	err := s.inTx(func(tx *sql.Tx) error {
		if err := debit(tx, n); err != nil {
			return err
		}
		var err error
		b, err = readBalance(tx)
		return err
	})
	return b, err
}

func (s *Store) updateWallet(set string, arg any) (Balance, error) {
	var b Balance
	err := s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE wallet SET "+set+", updated_at = CURRENT_TIMESTAMP WHERE id = 1", arg); err != nil {
			return fmt.Errorf("storage: cannot update wallet: %w", err)
		}
		var err error
		b, err = readBalance(tx)
		return err
	})
	return b, err
}

// RecordPurchase debits price, applies grant and records the purchase in one
// transaction.
func (s *Store) RecordPurchase(itemID string, price int64, grant Grant) (Purchase, Balance, error) {
	p := Purchase{ItemID: itemID, Price: price, Moves: grant.Moves, Seconds: grant.Seconds}
	var b Balance
	err := s.inTx(func(tx *sql.Tx) error {
		if err := debit(tx, price); err != nil {
			return err
		}
		if _, err := tx.Exec(
			`UPDATE wallet SET extra_moves = extra_moves + ?, extra_seconds = extra_seconds + ?,
			 updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
			grant.Moves, grant.Seconds,
		); err != nil {
			return fmt.Errorf("storage: cannot apply purchase: %w", err)
		}
		res, err := tx.Exec(
			"INSERT INTO purchases (item_id, price, moves, seconds) VALUES (?, ?, ?, ?)",
			itemID, price, grant.Moves, grant.Seconds,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot record purchase: %w", err)
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("storage: cannot get inserted ID: %w", err)
		}
		b, err = readBalance(tx)
		return err
	})
	if err != nil {
		return Purchase{}, Balance{}, err
	}
	p.CreatedAt = time.Now().UTC()
	return p, b, nil
}

// IssueCoupon debits c.Price and stores the coupon in one transaction.
func (s *Store) IssueCoupon(c Coupon) (Coupon, Balance, error) {
	var b Balance
	err := s.inTx(func(tx *sql.Tx) error {
		if err := debit(tx, c.Price); err != nil {
			return err
		}
		res, err := tx.Exec(
			"INSERT INTO coupons (code, price, face_value, currency) VALUES (?, ?, ?, ?)",
			c.Code, c.Price, c.FaceValue, c.Currency,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save coupon: %w", err)
		}
		if c.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("storage: cannot get inserted ID: %w", err)
		}
		b, err = readBalance(tx)
		return err
	})
	if err != nil {
		return Coupon{}, Balance{}, err
	}
	c.CreatedAt = time.Now().UTC()
	return c, b, nil
}

// Purchases returns the most recent purchases first.
func (s *Store) Purchases(limit int) ([]Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, item_id, price, moves, seconds, created_at
		 FROM purchases ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query purchases: %w", err)
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		var createdAt any
		if err := rows.Scan(&p.ID, &p.ItemID, &p.Price, &p.Moves, &p.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Coupons returns every issued coupon, newest first.
func (s *Store) Coupons() ([]Coupon, error) {
	rows, err := s.db.Query(
		`SELECT id, code, price, face_value, currency, created_at
		 FROM coupons ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query coupons: %w", err)
	}
	defer rows.Close()

	var out []Coupon
	for rows.Next() {
		var c Coupon
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Code, &c.Price, &c.FaceValue, &c.Currency, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// debit subtracts n points if the balance covers it.
func debit(tx *sql.Tx, n int64) error {
	if n < 0 {
		return fmt.Errorf("storage: cannot spend %d points", n)
	}
	res, err := tx.Exec(
		"UPDATE wallet SET points = points - ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1 AND points >= ?",
		n, n,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot spend points: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot spend points: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		//nolint:errcheck // The original error is more useful than a rollback failure
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}
