package brand

// DefaultNoOverlapPenalty is added to the opportunity score of customers
// buying none of the brand's categories.
const DefaultNoOverlapPenalty = 10

// ScoringPolicy computes a brand match's opportunity score from the number
// of categories the customer buys and how many of them the brand carries.
// Lower scores rank first.
type ScoringPolicy interface {
	OpportunityScore(diversity, overlap int) float64
}

// PenaltyPolicy scores by category diversity and adds Penalty when the
// customer buys none of the brand's categories.
type PenaltyPolicy struct {
	Penalty float64
}

// OpportunityScore implements ScoringPolicy.
func (p PenaltyPolicy) OpportunityScore(diversity, overlap int) float64 {
	if overlap > 0 {
		return float64(diversity)
	}
	return float64(diversity) + p.Penalty
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() ScoringPolicy {
	return PenaltyPolicy{Penalty: DefaultNoOverlapPenalty}
}

// PolicyFunc adapts a function to ScoringPolicy.
type PolicyFunc func(diversity, overlap int) float64

// OpportunityScore implements ScoringPolicy.
func (f PolicyFunc) OpportunityScore(diversity, overlap int) float64 {
	return f(diversity, overlap)
}
