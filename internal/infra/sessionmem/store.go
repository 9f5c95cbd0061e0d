package sessionmem

import (
	"context"
	"sort"
	"sync"

	"github.com/studio540/bjj-analyzer/internal/domain/analysis"
	"github.com/studio540/bjj-analyzer/internal/domain/narration"
)

// Store holds analysis results and narration jobs for the lifetime of the
// process. Persistence is deliberately absent; this is the explicit,
// injected replacement for globals holding "the last result".
type Store struct {
	mu       sync.RWMutex
	analyses map[analysis.AnalysisID]*analysis.Result
	jobs     map[narration.JobID]*narration.Job
}

func New() *Store {
	return &Store{
		analyses: make(map[analysis.AnalysisID]*analysis.Result),
		jobs:     make(map[narration.JobID]*narration.Job),
	}
}

// ===== analysis.Repository =====

func (s *Store) Save(_ context.Context, r *analysis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.analyses[r.ID] = &cp
	return nil
}

func (s *Store) Get(_ context.Context, id analysis.AnalysisID) (*analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.analyses[id]
	if !ok {
		return nil, analysis.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) Latest(_ context.Context, limit int) ([]*analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*analysis.Result, 0, len(s.analyses))
	for _, r := range s.analyses {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ===== narration job store =====

type JobStore struct{ *Store }

// Jobs exposes the narration.Repository view of the same store.
func (s *Store) Jobs() *JobStore { return &JobStore{s} }

func (j *JobStore) Save(_ context.Context, job *narration.Job) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	cp := *job
	j.jobs[job.ID] = &cp
	return nil
}

func (j *JobStore) Get(_ context.Context, id narration.JobID) (*narration.Job, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	job, ok := j.jobs[id]
	if !ok {
		return nil, narration.ErrNotFound
	}
	cp := *job
	return &cp, nil
}
