package entities

// Timeline is how soon the patient wants treatment
type Timeline string

const (
	TimelineImmediate   Timeline = "immediate"
	TimelineOneMonth    Timeline = "1_month"
	TimelineThreeMonths Timeline = "3_months"
	TimelineFlexible    Timeline = "flexible"
)

// TravelType indicates whether the patient is willing to travel abroad
type TravelType string

const (
	TravelDomestic      TravelType = "domestic"
	TravelInternational TravelType = "international"
)

// Intent is the normalized representation of a patient's treatment request.
// It is immutable once constructed; budgets are in currency minor units and
// BudgetMin <= BudgetMax whenever both are present.
type Intent struct {
	Condition         string     `json:"condition"`
	BudgetMin         *int64     `json:"budget_min,omitempty"`
	BudgetMax         *int64     `json:"budget_max,omitempty"`
	PreferredLocation string     `json:"preferred_location,omitempty"`
	PreferredCountry  string     `json:"preferred_country,omitempty"`
	Timeline          Timeline   `json:"timeline"`
	TravelType        TravelType `json:"travel_type"`
}
