package entities

// ConditionCatalogEntry maps a medical condition to its specialty and category.
// Entries validate patient intents and power the typeahead suggest endpoint.
type ConditionCatalogEntry struct {
	Condition string `json:"condition" db:"condition"`
	Specialty string `json:"specialty" db:"specialty"`
	Category  string `json:"category" db:"category"`
}
