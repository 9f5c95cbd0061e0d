package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "github.com/studio540/bjj-analyzer/internal/domain/analysis"
)

const (
	defaultPollInterval = 1 * time.Second
	defaultWarnAfter    = 60 * time.Second
	defaultPollDeadline = 5 * time.Minute
)

// WaitUntilReady polls the remote processing state until it leaves
// PROCESSING. It never hands a PROCESSING handle back to the caller: the
// outcome is a READY handle, ErrProcessingFailed, ErrPollTimeout, or the
// caller's own cancellation. A one-time slow warning is logged and reported
// once the wait exceeds WarnAfter.
func (s *Service) WaitUntilReady(ctx context.Context, h domain.MediaHandle) (domain.MediaHandle, bool, error) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	warnAfter := s.WarnAfter
	if warnAfter <= 0 {
		warnAfter = defaultWarnAfter
	}
	deadline := s.PollDeadline
	if deadline <= 0 {
		deadline = defaultPollDeadline
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := s.Clock.Now()
	warned := false

	for {
		if h.Status.Terminal() {
			if h.Status == domain.StatusFailed {
				return h, warned, fmt.Errorf("%w: remote_id=%s", domain.ErrProcessingFailed, h.RemoteID)
			}
			return h, warned, nil
		}

		if !warned && s.Clock.Now().Sub(start) > warnAfter {
			warned = true
			log.Printf("video processing is taking longer than expected: remote_id=%s elapsed=%s", h.RemoteID, s.Clock.Now().Sub(start))
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return h, warned, fmt.Errorf("%w: still %s after %s", domain.ErrPollTimeout, h.Status, deadline)
			}
			return h, warned, ctx.Err()
		case <-s.Clock.After(interval):
		}

		next, err := s.Model.Poll(ctx, h)
		if err != nil {
			return h, warned, err
		}
		h = next
	}
}
