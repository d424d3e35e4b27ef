package engine

// CascadeStep is one match -> resolve -> destroy -> create -> settle cycle.
// Before is the grid as the step found it and After the grid once refilled;
// both are independent copies the caller may keep.
type CascadeStep struct {
	Runs      []Run         `json:"-"`
	Destroyed []Removal     `json:"destroyed"`
	Waves     int           `json:"waves"`
	Created   []Creation    `json:"created"`
	Points    int           `json:"points"`
	Falls     []Fall        `json:"falls"`
	Spawns    []Spawn       `json:"spawns"`
	Before    *Grid         `json:"before"`
	After     *Grid         `json:"after"`
	Settle    SettleReport  `json:"-"`
	Destroy   DestroyReport `json:"-"`
}

// Cascade repeatedly resolves the runs on g until the board is stable and
// returns one step per cycle in order. A grid with no runs yields no steps
// and is left untouched.
func Cascade(g *Grid, rules Rules, typeCount int, rng Rand) []CascadeStep {
	var steps []CascadeStep
	for {
		runs := FindMatches(g)
		if len(runs) == 0 {
			return steps
		}
		steps = append(steps, cascadeStep(g, runs, rules, typeCount, rng))
	}
}

func cascadeStep(g *Grid, runs []Run, rules Rules, typeCount int, rng Rand) CascadeStep {
	before := g.Clone()

	res := Resolve(runs, rules)
	destroyed := Destroy(g, res.Destroyed, rules)
	created := ApplyCreations(g, res.Created)
	settled := Settle(g, typeCount, rng)

	return CascadeStep{
		Runs:      runs,
		Destroyed: flatten(destroyed),
		Waves:     len(destroyed.Waves),
		Created:   created,
		Points:    res.Points,
		Falls:     settled.Falls,
		Spawns:    settled.Spawns,
		Before:    before,
		After:     g.Clone(),
		Settle:    settled,
		Destroy:   destroyed,
	}
}

func flatten(r DestroyReport) []Removal {
	out := make([]Removal, 0, r.Count())
	for _, w := range r.Waves {
		out = append(out, w...)
	}
	return out
}

// TotalPoints sums the points of every step.
func TotalPoints(steps []CascadeStep) int {
	total := 0
	for _, s := range steps {
		total += s.Points
	}
	return total
}
