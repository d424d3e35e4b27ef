// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board        Match3Board        `yaml:"board"`
	Scoring      Match3Scoring      `yaml:"scoring"`
	Specials     Match3Specials     `yaml:"specials"`
	Session      Match3Session      `yaml:"session"`
	Presentation Match3Presentation `yaml:"presentation"`
	Shop         ShopConfig         `yaml:"shop"`
}

// Match3Board defines the board shape.
type Match3Board struct {
	Rows        int `yaml:"rows"`         // 0 = pick compact or tall rows from terminal height
	CompactRows int `yaml:"compact_rows"` // Rows used on short terminals
	TallRows    int `yaml:"tall_rows"`    // Rows used when the terminal is tall enough
	Cols        int `yaml:"cols"`
	TypeCount   int `yaml:"type_count"` // Number of distinct tile types
}

// Match3Scoring defines how matched tiles are scored.
type Match3Scoring struct {
	PointsPerTile int `yaml:"points_per_tile"`
}

// Match3Specials defines special tile blast sizes.
type Match3Specials struct {
	WrappedRadius   int `yaml:"wrapped_radius"`
	ColorBombRadius int `yaml:"color_bomb_radius"`
}

// Match3Session defines per-game limits before purchased bonuses.
type Match3Session struct {
	MovesLimit    int `yaml:"moves_limit"`
	DailySeconds  int `yaml:"daily_seconds"`
	WeeklySeconds int `yaml:"weekly_seconds"`
}

// Match3Presentation defines cascade playback pacing.
type Match3Presentation struct {
	StepTicks  int `yaml:"step_ticks"`  // Ticks each cascade step stays on screen
	FlashTicks int `yaml:"flash_ticks"` // Ticks destroyed cells flash before the settled grid shows
}

// ShopConfig defines the store catalog.
type ShopConfig struct {
	MovePacks []PackConfig `yaml:"moves"`
	TimePacks []PackConfig `yaml:"time"`
	Coupon    CouponConfig `yaml:"coupon"`
}

// PackConfig is one purchasable bundle. Amount is moves for move packs and
// seconds for time packs.
type PackConfig struct {
	ID     string `yaml:"id"`
	Price  int    `yaml:"price"`
	Amount int    `yaml:"amount"`
}

// CouponConfig defines the point-for-coupon exchange.
type CouponConfig struct {
	Price     int    `yaml:"price"`
	FaceValue string `yaml:"face_value"` // Decimal string, e.g. "5000.00"
	Currency  string `yaml:"currency"`
	Prefix    string `yaml:"prefix"`
	Length    int    `yaml:"length"` // Random characters after the prefix
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name from the command line.
func ParseDifficultyPreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// IsFixedPreset returns true if the preset keeps the loaded values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
