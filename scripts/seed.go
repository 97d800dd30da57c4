package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/postgres"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/observability"
	"github.com/medatlas/hospital-discovery/pkg/config"
)

type seedHospital struct {
	name          string
	city          string
	country       string
	specialties   []string
	treatments    []string
	priceMin      int64
	priceMax      int64
	rating        float64
	reviews       int
	successRates  map[string]float64
	completion    float64
	satisfaction  float64
	responseHours float64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("hospital-discovery-seed", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := goqu.New("postgres", pgClient.DB())

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				hospitals,
				condition_catalog
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	conditions := []struct{ condition, specialty, category string }{
		{"Knee Replacement", "Orthopedics", "Surgery"},
		{"Hip Replacement", "Orthopedics", "Surgery"},
		{"Coronary Bypass", "Cardiology", "Surgery"},
		{"Cataract Surgery", "Ophthalmology", "Surgery"},
		{"IVF", "Fertility", "Treatment"},
		{"Chemotherapy", "Oncology", "Treatment"},
		{"Dialysis", "Nephrology", "Treatment"},
		{"Spinal Fusion", "Orthopedics", "Surgery"},
	}

	for _, c := range conditions {
		query, args, err := db.Insert("condition_catalog").Rows(goqu.Record{
			"condition": c.condition,
			"specialty": c.specialty,
			"category":  c.category,
		}).OnConflict(goqu.DoNothing()).ToSQL()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build condition insert")
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Fatal().Err(err).Str("condition", c.condition).Msg("failed to seed condition")
		}
	}
	log.Info().Int("count", len(conditions)).Msg("seeded condition catalog")

	hospitals := []seedHospital{
		{
			name: "Fortune Heart & Ortho Institute", city: "Delhi", country: "India",
			specialties: []string{"Orthopedics", "Cardiology"},
			treatments:  []string{"Knee Replacement", "Hip Replacement", "Coronary Bypass"},
			priceMin:    250000, priceMax: 450000, rating: 4.5, reviews: 812,
			successRates: map[string]float64{"Knee Replacement": 92, "Coronary Bypass": 95},
			completion:   97, satisfaction: 91, responseHours: 12,
		},
		{
			name: "Coastal Care Clinic", city: "Chennai", country: "India",
			specialties: []string{"Ophthalmology", "Nephrology"},
			treatments:  []string{"Cataract Surgery", "Dialysis"},
			priceMin:    40000, priceMax: 120000, rating: 4.2, reviews: 233,
			successRates: map[string]float64{"Cataract Surgery": 98},
			completion:   94, satisfaction: 88, responseHours: 30,
		},
		{
			name: "Lakeside Fertility Center", city: "Bangkok", country: "Thailand",
			specialties: []string{"Fertility"},
			treatments:  []string{"IVF"},
			priceMin:    300000, priceMax: 700000, rating: 4.8, reviews: 412,
			successRates: map[string]float64{"IVF": 61},
			completion:   90, satisfaction: 95, responseHours: 8,
		},
	}

	now := time.Now()
	for _, h := range hospitals {
		rates, err := json.Marshal(h.successRates)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to marshal success rates")
		}

		query, args, err := db.Insert("hospitals").Rows(goqu.Record{
			"id":                   uuid.New().String(),
			"name":                 h.name,
			"city":                 h.city,
			"country":              h.country,
			"specialties":          pq.Array(h.specialties),
			"treatments_offered":   pq.Array(h.treatments),
			"price_range_min":      h.priceMin,
			"price_range_max":      h.priceMax,
			"rating_avg":           h.rating,
			"total_reviews":        h.reviews,
			"success_rates":        rates,
			"patient_volume":       1000,
			"completion_rate":      h.completion,
			"patient_satisfaction": h.satisfaction,
			"response_time_hours":  h.responseHours,
			"is_public_listed":     true,
			"created_at":           now,
			"updated_at":           now,
		}).ToSQL()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build hospital insert")
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Fatal().Err(err).Str("hospital", h.name).Msg("failed to seed hospital")
		}
	}
	log.Info().Int("count", len(hospitals)).Msg("seeded hospitals")
}
