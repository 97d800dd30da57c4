package entities

// Breakdown factor names reported for every match.
const (
	FactorConditionRelevance = "condition_relevance"
	FactorBudgetFit          = "budget_fit"
	FactorLocationFit        = "location_fit"
	FactorOutcomeQuality     = "outcome_quality"
	FactorResponsiveness     = "responsiveness"
)

// HospitalMatch is a scored candidate returned by the matching endpoint.
// MatchScore is a deterministic pure function of the intent and the hospital
// snapshot; MatchBreakdown always carries all five factor sub-scores.
type HospitalMatch struct {
	*Hospital
	MatchScore     int            `json:"match_score"`
	MatchBreakdown map[string]int `json:"match_breakdown"`
}
