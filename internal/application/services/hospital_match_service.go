package services

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/medatlas/hospital-discovery/internal/domain/entities"
	"github.com/medatlas/hospital-discovery/internal/domain/repositories"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/observability"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

// MatchResponse is the full matching endpoint payload: ranked hospitals plus
// the normalized intent echoed back to the caller.
type MatchResponse struct {
	Hospitals []entities.HospitalMatch `json:"hospitals"`
	Intent    entities.Intent          `json:"intent"`
}

// HospitalMatchService runs the matching pipeline: catalog snapshot →
// candidate filter → parallel scoring → deterministic ranking.
type HospitalMatchService struct {
	catalog repositories.HospitalCatalog
	scorer  *MatchScoringService
	metrics *observability.Metrics
}

// NewHospitalMatchService creates a new match service
func NewHospitalMatchService(catalog repositories.HospitalCatalog, scorer *MatchScoringService) *HospitalMatchService {
	return &HospitalMatchService{
		catalog: catalog,
		scorer:  scorer,
	}
}

// SetMetrics enables pipeline metrics
func (s *HospitalMatchService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Match normalizes the request, scores every eligible hospital and returns
// the ranked result. An empty candidate set is a valid empty response, not an
// error.
func (s *HospitalMatchService) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	intent, err := NormalizeIntent(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError("failed to read hospital catalog", err)
	}

	candidates := FilterCandidates(snapshot)

	matches, err := s.scoreAll(ctx, intent, candidates)
	if err != nil {
		return nil, err
	}

	matches = RankMatches(matches, 0)

	if s.metrics != nil {
		observability.RecordMatchMetric(ctx, s.metrics, len(candidates), time.Since(start))
	}

	return &MatchResponse{Hospitals: matches, Intent: intent}, nil
}

// scoreAll fans scoring out over a small worker pool. Results are merged by
// index, so completion order never affects the output.
func (s *HospitalMatchService) scoreAll(ctx context.Context, intent entities.Intent, candidates []*entities.Hospital) ([]entities.HospitalMatch, error) {
	matches := make([]entities.HospitalMatch, len(candidates))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				score, breakdown := s.scorer.Score(intent, candidates[i])
				matches[i] = entities.HospitalMatch{
					Hospital:       candidates[i],
					MatchScore:     score,
					MatchBreakdown: breakdown,
				}
			}
		}()
	}

	var cancelled error
feed:
	for i := range candidates {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, apperrors.NewInternalError("matching cancelled", cancelled)
	}
	return matches, nil
}

// FilterCandidates narrows a catalog snapshot down to hospitals eligible for
// scoring: publicly listed and structurally valid. Budget, country and
// condition stay soft signals for the scorer; nothing else is excluded here.
func FilterCandidates(snapshot []*entities.Hospital) []*entities.Hospital {
	candidates := make([]*entities.Hospital, 0, len(snapshot))
	for _, hospital := range snapshot {
		if hospital == nil || !hospital.IsPublicListed {
			continue
		}
		if hospital.ID == "" || hospital.Name == "" {
			// malformed record: skip rather than abort the batch
			continue
		}
		candidates = append(candidates, hospital)
	}
	return candidates
}

// RankMatches orders matches by score descending with a deterministic
// tie-break: rating desc, review count desc, then hospital ID ascending.
// A positive limit truncates the ranked list; zero means unlimited.
func RankMatches(matches []entities.HospitalMatch, limit int) []entities.HospitalMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		ri, rj := ratingOrZero(matches[i].Hospital), ratingOrZero(matches[j].Hospital)
		if ri != rj {
			return ri > rj
		}
		if matches[i].TotalReviews != matches[j].TotalReviews {
			return matches[i].TotalReviews > matches[j].TotalReviews
		}
		return matches[i].ID < matches[j].ID
	})

	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

func ratingOrZero(hospital *entities.Hospital) float64 {
	if hospital.RatingAvg == nil {
		return 0
	}
	return *hospital.RatingAvg
}
