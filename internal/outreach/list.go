package outreach

import (
	"fmt"
	"sort"

	"github.com/sells-group/salesmix/internal/model"
)

// Prospect is a target ranked for outreach.
type Prospect struct {
	Target
	OutreachPriority    float64 `json:"outreach_priority" csv:"outreach_priority"`
	PersonalizationNote string  `json:"personalization_note" csv:"personalization_note"`
}

// GenerateOutreachList ranks targets for outreach. Priority is the average
// rank of the opportunity score (1 = best); at most limit rows are returned
// when limit > 0.
func GenerateOutreachList(records []model.Record, q TargetQuery, limit int) []Prospect {
	targets := FindTargetBusinesses(records, q)

	scores := make([]float64, len(targets))
	for i, t := range targets {
		scores[i] = float64(t.OpportunityScore)
	}
	ranks := AverageRank(scores)

	out := make([]Prospect, len(targets))
	for i, t := range targets {
		out[i] = Prospect{
			Target:           t,
			OutreachPriority: ranks[i],
			PersonalizationNote: fmt.Sprintf("Similar %ss in your area are purchasing %s. You currently purchase: %s",
				q.BusinessCategory, q.ProductCategory, t.CurrentProducts),
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AverageRank ranks values ascending starting at 1; tied values share the
// mean of the ranks they span.
func AverageRank(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for start := 0; start < len(idx); {
		end := start
		for end+1 < len(idx) && values[idx[end+1]] == values[idx[start]] {
			end++
		}
		// Positions start..end hold ranks start+1..end+1.
		avg := float64(start+end+2) / 2
		for k := start; k <= end; k++ {
			ranks[idx[k]] = avg
		}
		start = end + 1
	}
	return ranks
}
