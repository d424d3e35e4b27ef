package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// minTypeCount is the fewest tile types a board can be dealt with and still
// avoid an initial match in every cell.
const minTypeCount = 3

// Validate rejects configurations that cannot produce a playable game.
func (c Match3Config) Validate() error {
	b := c.Board
	if b.Rows != 0 && b.Rows < 3 {
		return invalid("board.rows %d must be 0 or at least 3", b.Rows)
	}
	if b.CompactRows < 3 || b.TallRows < 3 {
		return invalid("board.compact_rows and board.tall_rows must be at least 3")
	}
	if b.Cols < 3 {
		return invalid("board.cols %d must be at least 3", b.Cols)
	}
	if b.TypeCount < minTypeCount {
		return invalid("board.type_count %d must be at least %d", b.TypeCount, minTypeCount)
	}
	if c.Scoring.PointsPerTile <= 0 {
		return invalid("scoring.points_per_tile must be positive")
	}
	if c.Specials.WrappedRadius < 0 || c.Specials.ColorBombRadius < 0 {
		return invalid("specials radii must not be negative")
	}
	s := c.Session
	if s.MovesLimit < 1 {
		return invalid("session.moves_limit %d must be at least 1", s.MovesLimit)
	}
	if s.DailySeconds < 1 || s.WeeklySeconds < 1 {
		return invalid("session.daily_seconds and session.weekly_seconds must be positive")
	}
	if c.Presentation.StepTicks < 0 || c.Presentation.FlashTicks < 0 {
		return invalid("presentation ticks must not be negative")
	}
	return c.Shop.validate()
}

func (s ShopConfig) validate() error {
	seen := make(map[string]bool)
	for _, packs := range [][]PackConfig{s.MovePacks, s.TimePacks} {
		for _, p := range packs {
			if p.ID == "" {
				return invalid("shop pack without id")
			}
			if seen[p.ID] {
				return invalid("shop pack %q listed twice", p.ID)
			}
			seen[p.ID] = true
			if p.Price <= 0 || p.Amount <= 0 {
				return invalid("shop pack %q needs a positive price and amount", p.ID)
			}
		}
	}
	if s.Coupon.Price <= 0 {
		return invalid("shop.coupon.price must be positive")
	}
	if s.Coupon.Length < 1 {
		return invalid("shop.coupon.length must be positive")
	}
	face, err := decimal.NewFromString(s.Coupon.FaceValue)
	if err != nil {
		return fmt.Errorf("%w: shop.coupon.face_value: %v", ErrInvalid, err)
	}
	if !face.IsPositive() {
		return invalid("shop.coupon.face_value must be positive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
