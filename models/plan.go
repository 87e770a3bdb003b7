package models

import "fmt"

// PairKey identifies one candidate page: a single service x location
// combination.
type PairKey struct {
	Service  string `json:"service"`
	Location string `json:"location"`
}

// Key returns the canonical string form used for snapshot and cache keys.
func (p PairKey) Key() string {
	return fmt.Sprintf("%s--%s", p.Service, p.Location)
}

// Generation strategies accepted by the planner.
const (
	StrategyPriority = "priority"
	StrategyStaged   = "staged"
	StrategyFull     = "full"
)

// GenerationPlan is the bounded set of pairs selected for pre-rendering at
// build time. Pairs outside the plan are generated lazily on first request.
type GenerationPlan struct {
	Strategy string    `json:"strategy"`
	Pairs    []PairKey `json:"pairs"`
	Cap      int       `json:"cap"`
	Exceeded bool      `json:"exceeded"`
}
