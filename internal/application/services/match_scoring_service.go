package services

import (
	"math"
	"strings"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
)

// Sub-score levels used by the condition relevance factor
const (
	conditionExactScore     = 100.0
	conditionPartialScore   = 70.0
	conditionBaselineScore  = 30.0
	partialBudgetScore      = 50.0
	neutralScore            = 50.0
	responseFastHours       = 24.0
	responseSlowHours       = 168.0
	domesticMismatchPenalty = 0.5
	countryMismatchScore    = 50.0
)

// ScoringWeights holds the relative weight of each match factor. Weights must
// sum to 1.0.
type ScoringWeights struct {
	ConditionRelevance float64
	BudgetFit          float64
	LocationFit        float64
	OutcomeQuality     float64
	Responsiveness     float64
}

// DefaultScoringWeights returns the production weighting
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ConditionRelevance: 0.35,
		BudgetFit:          0.20,
		LocationFit:        0.15,
		OutcomeQuality:     0.20,
		Responsiveness:     0.10,
	}
}

// MatchScoringService computes per-hospital match scores for a patient
// intent. Score is a pure function with no I/O and no shared state, so it is
// safe to call concurrently for different candidates.
type MatchScoringService struct {
	weights ScoringWeights
}

// NewMatchScoringService creates a scoring service with the given weights
func NewMatchScoringService(weights ScoringWeights) *MatchScoringService {
	return &MatchScoringService{weights: weights}
}

// Score returns the overall 0-100 match score and the per-factor breakdown.
// The breakdown always reports all five factors, including defaulted ones.
func (s *MatchScoringService) Score(intent entities.Intent, hospital *entities.Hospital) (int, map[string]int) {
	condition := conditionRelevance(intent, hospital)
	budget := budgetFit(intent, hospital)
	location := locationFit(intent, hospital)
	outcome := outcomeQuality(intent.Condition, hospital)
	response := responsiveness(hospital)

	total := condition*s.weights.ConditionRelevance +
		budget*s.weights.BudgetFit +
		location*s.weights.LocationFit +
		outcome*s.weights.OutcomeQuality +
		response*s.weights.Responsiveness

	breakdown := map[string]int{
		entities.FactorConditionRelevance: roundScore(condition),
		entities.FactorBudgetFit:          roundScore(budget),
		entities.FactorLocationFit:        roundScore(location),
		entities.FactorOutcomeQuality:     roundScore(outcome),
		entities.FactorResponsiveness:     roundScore(response),
	}

	return roundScore(total), breakdown
}

// OutcomeScore exposes the outcome quality sub-score for browse sorting
func (s *MatchScoringService) OutcomeScore(hospital *entities.Hospital) float64 {
	return outcomeQuality("", hospital)
}

// conditionRelevance scores how well the hospital covers the requested
// condition: exact success-rate entry beats a specialty/treatment name match,
// which beats the unmatched baseline.
func conditionRelevance(intent entities.Intent, hospital *entities.Hospital) float64 {
	condition := strings.ToLower(intent.Condition)

	for tracked := range hospital.SuccessRates {
		if strings.ToLower(tracked) == condition {
			return conditionExactScore
		}
	}

	for _, specialty := range hospital.Specialties {
		if containsEither(specialty, condition) {
			return conditionPartialScore
		}
	}
	for _, treatment := range hospital.TreatmentsOffered {
		if containsEither(treatment, condition) {
			return conditionPartialScore
		}
	}

	return conditionBaselineScore
}

// budgetFit scores the overlap between the requested budget and the
// hospital's price range. Either side without any budget information is
// unconstrained; partial information on either side scores neutral unless the
// known bounds contradict each other.
func budgetFit(intent entities.Intent, hospital *entities.Hospital) float64 {
	iMin, iMax := intent.BudgetMin, intent.BudgetMax
	hMin, hMax := hospital.PriceRangeMin, hospital.PriceRangeMax

	if iMin == nil && iMax == nil {
		return 100
	}
	if hMin == nil && hMax == nil {
		return 100
	}

	if iMin != nil && iMax != nil && hMin != nil && hMax != nil {
		if *iMin <= *hMin && *hMax <= *iMax {
			// every price the hospital charges is affordable
			return 100
		}

		overlap := min64(*hMax, *iMax) - max64(*hMin, *iMin)
		if overlap < 0 {
			return 0
		}

		requested := *iMax - *iMin
		if requested == 0 {
			// point budget: either inside the hospital's range or not
			if *hMin <= *iMin && *iMin <= *hMax {
				return 100
			}
			return 0
		}

		return float64(overlap) / float64(requested) * 100
	}

	// One side only partially known: neutral unless contradicted
	if hMin != nil && iMax != nil && *hMin > *iMax {
		return 0
	}
	if hMax != nil && iMin != nil && *hMax < *iMin {
		return 0
	}
	return partialBudgetScore
}

// locationFit scores country and city preference. A domestic travel intent
// halves the score for cross-border candidates.
func locationFit(intent entities.Intent, hospital *entities.Hospital) float64 {
	countryMatch := intent.PreferredCountry == "" ||
		strings.EqualFold(intent.PreferredCountry, hospital.Address.Country)

	score := conditionExactScore
	if !countryMatch {
		score = countryMismatchScore
	}

	if intent.PreferredLocation != "" && strings.EqualFold(intent.PreferredLocation, hospital.Address.City) {
		score = 100
	}

	if intent.TravelType == entities.TravelDomestic && !countryMatch {
		score *= domesticMismatchPenalty
	}

	return score
}

// outcomeQuality averages whichever quality signals the record carries;
// missing signals are excluded rather than counted as zero.
func outcomeQuality(condition string, hospital *entities.Hospital) float64 {
	var sum float64
	var count int

	if hospital.RatingAvg != nil {
		sum += clampScore(*hospital.RatingAvg * 20)
		count++
	}
	if condition != "" {
		lowered := strings.ToLower(condition)
		for tracked, rate := range hospital.SuccessRates {
			if strings.ToLower(tracked) == lowered {
				sum += clampScore(rate)
				count++
				break
			}
		}
	}
	if hospital.CompletionRate != nil {
		sum += clampScore(*hospital.CompletionRate)
		count++
	}
	if hospital.PatientSatisfaction != nil {
		sum += clampScore(*hospital.PatientSatisfaction)
		count++
	}

	if count == 0 {
		return neutralScore
	}
	return sum / float64(count)
}

// responsiveness maps response time onto 0-100: full credit within a day,
// none beyond a week.
func responsiveness(hospital *entities.Hospital) float64 {
	if hospital.ResponseTimeHours == nil || *hospital.ResponseTimeHours <= 0 {
		return neutralScore
	}

	hours := *hospital.ResponseTimeHours
	switch {
	case hours <= responseFastHours:
		return 100
	case hours >= responseSlowHours:
		return 0
	default:
		return (responseSlowHours - hours) / (responseSlowHours - responseFastHours) * 100
	}
}

func containsEither(entry, condition string) bool {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if entry == "" {
		return false
	}
	return strings.Contains(entry, condition) || strings.Contains(condition, entry)
}

func roundScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
