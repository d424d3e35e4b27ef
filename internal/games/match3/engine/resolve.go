package engine

// Rules holds the tunable constants of resolution and destruction.
type Rules struct {
	PointsPerTile   int
	WrappedRadius   int
	ColorBombRadius int
}

// DefaultRules returns 10 points per tile and a 3x3 blast for both wrapped and
// color-bomb tiles.
func DefaultRules() Rules {
	return Rules{
		PointsPerTile:   10,
		WrappedRadius:   1,
		ColorBombRadius: 1,
	}
}

// Creation records a special tile to be made by upgrading the tile at Cell.
type Creation struct {
	Cell Cell `json:"cell"`
	Kind Kind `json:"kind"`
}

// Resolution is the outcome of one pass over a set of runs.
type Resolution struct {
	Destroyed CellSet
	Created   []Creation
	Points    int
}

// Resolve merges runs into a destruction set and a list of special-tile
// creations.
//
// A cell shared by two or more runs becomes a wrapped tile. Each striped or
// color-bomb run then claims its center cell unless that cell is already a
// creation site. Points are awarded for every distinct matched cell, including
// the ones that survive as specials, and creation sites are then removed from
// the destruction set.
func Resolve(runs []Run, rules Rules) Resolution {
	pending := make(CellSet)
	refs := make(map[Cell]int)
	for _, run := range runs {
		for _, c := range run.Cells {
			pending.Add(c)
			refs[c]++
		}
	}

	var created []Creation
	sites := make(CellSet)

	// Intersections first, in row-major order so the result is deterministic.
	for _, c := range pending.Sorted() {
		if refs[c] >= 2 {
			created = append(created, Creation{Cell: c, Kind: KindWrapped})
			sites.Add(c)
		}
	}

	for _, run := range runs {
		kind := run.SpecialKind()
		if kind == KindNormal {
			continue
		}
		center := run.Center()
		if sites.Has(center) {
			continue
		}
		created = append(created, Creation{Cell: center, Kind: kind})
		sites.Add(center)
	}

	points := len(pending) * rules.PointsPerTile

	for c := range sites {
		pending.Remove(c)
	}

	return Resolution{
		Destroyed: pending,
		Created:   created,
		Points:    points,
	}
}
