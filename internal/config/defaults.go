package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Rows:        0,
			CompactRows: 6,
			TallRows:    8,
			Cols:        8,
			TypeCount:   6,
		},
		Scoring: Match3Scoring{
			PointsPerTile: 10,
		},
		Specials: Match3Specials{
			WrappedRadius:   1,
			ColorBombRadius: 1,
		},
		Session: Match3Session{
			MovesLimit:    30,
			DailySeconds:  60,
			WeeklySeconds: 300,
		},
		Presentation: Match3Presentation{
			StepTicks:  18,
			FlashTicks: 8,
		},
		Shop: ShopConfig{
			MovePacks: []PackConfig{
				{ID: "moves-5", Price: 500, Amount: 5},
				{ID: "moves-10", Price: 900, Amount: 10},
				{ID: "moves-20", Price: 1600, Amount: 20},
				{ID: "moves-50", Price: 3500, Amount: 50},
				{ID: "moves-100", Price: 6000, Amount: 100},
				{ID: "moves-200", Price: 11000, Amount: 200},
			},
			TimePacks: []PackConfig{
				{ID: "time-1m", Price: 1000, Amount: 60},
				{ID: "time-3m", Price: 2500, Amount: 180},
				{ID: "time-5m", Price: 4000, Amount: 300},
				{ID: "time-10m", Price: 7500, Amount: 600},
				{ID: "time-30m", Price: 20000, Amount: 1800},
				{ID: "time-1h", Price: 35000, Amount: 3600},
			},
			Coupon: CouponConfig{
				Price:     1000000,
				FaceValue: "5000",
				Currency:  "NGN",
				Prefix:    "PZ-",
				Length:    9,
			},
		},
	}
}
