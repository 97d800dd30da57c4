package entities

import (
	"time"
)

// Hospital represents a hospital or clinic listed in the catalog
type Hospital struct {
	ID                  string             `json:"id" db:"id"`
	Name                string             `json:"name" db:"name"`
	Address             Address            `json:"address" db:"-"`
	PhoneNumber         string             `json:"phone_number,omitempty" db:"phone_number"`
	Email               string             `json:"email,omitempty" db:"email"`
	Website             string             `json:"website,omitempty" db:"website"`
	Description         string             `json:"description,omitempty" db:"description"`
	Specialties         []string           `json:"specialties" db:"-"`
	TreatmentsOffered   []string           `json:"treatments_offered" db:"-"`
	PriceRangeMin       *int64             `json:"price_range_min,omitempty" db:"price_range_min"`
	PriceRangeMax       *int64             `json:"price_range_max,omitempty" db:"price_range_max"`
	RatingAvg           *float64           `json:"rating_avg,omitempty" db:"rating_avg"`
	TotalReviews        int                `json:"total_reviews" db:"total_reviews"`
	SuccessRates        map[string]float64 `json:"success_rates,omitempty" db:"-"`
	PatientVolume       int                `json:"patient_volume" db:"patient_volume"`
	CompletionRate      *float64           `json:"completion_rate,omitempty" db:"completion_rate"`
	PatientSatisfaction *float64           `json:"patient_satisfaction,omitempty" db:"patient_satisfaction"`
	ResponseTimeHours   *float64           `json:"response_time_hours,omitempty" db:"response_time_hours"`
	IsPublicListed      bool               `json:"is_public_listed" db:"is_public_listed"`
	CreatedAt           time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street,omitempty" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state,omitempty" db:"state"`
	Country string `json:"country" db:"country"`
}
