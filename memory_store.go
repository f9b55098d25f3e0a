package pagetour

import (
	"context"
	"fmt"
	"slices"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"

	"github.com/networkteam/pagetour/capture"
	"github.com/networkteam/pagetour/history"
	"github.com/networkteam/pagetour/report"
)

// memoryStore keeps the most recent runs of an instance without a history database.
type memoryStore struct {
	runs *capture.RingBuffer[*report.Run]
}

func newMemoryStore(capacity int) *memoryStore {
	return &memoryStore{runs: capture.NewRingBuffer[*report.Run](capacity)}
}

func (s *memoryStore) SaveRun(_ context.Context, run *report.Run) error {
	s.runs.Add(run)
	return nil
}

func (s *memoryStore) ListRuns(_ context.Context, limit int) ([]report.Overview, error) {
	runs := s.runs.All()
	slices.Reverse(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return lo.Map(runs, func(run *report.Run, _ int) report.Overview { return run.Overview() }), nil
}

func (s *memoryStore) GetRun(_ context.Context, id uuid.UUID) (*report.Run, error) {
	run, ok := lo.Find(s.runs.All(), func(run *report.Run) bool { return run.ID == id })
	if !ok {
		return nil, fmt.Errorf("%w: %s", history.ErrRunNotFound, id)
	}
	return run, nil
}
