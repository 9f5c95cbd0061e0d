package analysis

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio540/bjj-analyzer/internal/application"
	domain "github.com/studio540/bjj-analyzer/internal/domain/analysis"
	"github.com/studio540/bjj-analyzer/internal/infra/media"
	"github.com/studio540/bjj-analyzer/internal/infra/sessionmem"
)

// fakeModel scripts the remote side: Submit returns statuses[0], each Poll
// advances through the rest and sticks on the last entry.
type fakeModel struct {
	mu        sync.Mutex
	statuses  []domain.HandleStatus
	generated string

	polls     int
	prompts   []string
	submitted string
	deleted   bool
}

func (m *fakeModel) handle(path string, status domain.HandleStatus) domain.MediaHandle {
	return domain.MediaHandle{
		LocalPath: path,
		RemoteID:  "files/abc123",
		URI:       "https://generativelanguage.example/files/abc123",
		MIMEType:  "video/mp4",
		Status:    status,
	}
}

func (m *fakeModel) Submit(_ context.Context, localPath, _ string) (domain.MediaHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = localPath
	return m.handle(localPath, m.statuses[0]), nil
}

func (m *fakeModel) Poll(_ context.Context, h domain.MediaHandle) (domain.MediaHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls++
	idx := m.polls
	if idx >= len(m.statuses) {
		idx = len(m.statuses) - 1
	}
	return m.handle(h.LocalPath, m.statuses[idx]), nil
}

func (m *fakeModel) Generate(_ context.Context, prompt string, h domain.MediaHandle) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.Status != domain.StatusReady {
		return "", domain.ErrGenerationFailed
	}
	m.prompts = append(m.prompts, prompt)
	return m.generated, nil
}

func (m *fakeModel) Delete(_ context.Context, _ domain.MediaHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = true
	return nil
}

func newService(t *testing.T, model *fakeModel) *Service {
	t.Helper()
	return &Service{
		Model:        model,
		Repo:         sessionmem.New(),
		Ingest:       &media.Ingestor{Dir: t.TempDir()},
		Clock:        application.SystemClock{},
		PollInterval: time.Millisecond,
		PollDeadline: time.Second,
	}
}

func TestAnalyzeReadyAfterTwoPolls(t *testing.T) {
	const fixed = "## SKILL ASSESSMENT\nSolid guard retention for a blue belt."
	model := &fakeModel{
		statuses:  []domain.HandleStatus{domain.StatusProcessing, domain.StatusProcessing, domain.StatusReady},
		generated: fixed,
	}
	svc := newService(t, model)

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{
		Query:    "How's my guard retention?",
		Media:    strings.NewReader("ten seconds of mp4"),
		Filename: "guard.mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, fixed, res.Text)
	assert.Equal(t, "How's my guard retention?", res.Query)
	assert.Equal(t, "guard.mp4", res.MediaName)
	assert.NotEmpty(t, res.ID)
	assert.False(t, res.GeneratedAt.IsZero())
	assert.Equal(t, 2, model.polls)

	// prompt harus berisi query user
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "How's my guard retention?")

	// remote media dibersihkan
	assert.True(t, model.deleted)

	// temp file hilang setelah request selesai
	_, err = os.Stat(model.submitted)
	assert.True(t, os.IsNotExist(err))

	// hasil tersimpan di session store
	stored, err := svc.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, fixed, stored.Text)
}

func TestAnalyzeEmptyQuery(t *testing.T) {
	svc := newService(t, &fakeModel{statuses: []domain.HandleStatus{domain.StatusReady}})

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{
		Query:    "   ",
		Media:    strings.NewReader("x"),
		Filename: "a.mp4",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestAnalyzeUnsupportedFormatCleansNothingUp(t *testing.T) {
	model := &fakeModel{statuses: []domain.HandleStatus{domain.StatusReady}}
	svc := newService(t, model)

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{
		Query:    "q",
		Media:    strings.NewReader("x"),
		Filename: "a.webm",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Empty(t, model.submitted, "nothing should reach the remote")
}

func TestAnalyzeProcessingFailed(t *testing.T) {
	model := &fakeModel{
		statuses:  []domain.HandleStatus{domain.StatusProcessing, domain.StatusFailed},
		generated: "unused",
	}
	svc := newService(t, model)

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{
		Query:    "q",
		Media:    strings.NewReader("x"),
		Filename: "a.mp4",
	})
	assert.ErrorIs(t, err, domain.ErrProcessingFailed)

	// temp file tetap dihapus di jalur error
	_, serr := os.Stat(model.submitted)
	assert.True(t, os.IsNotExist(serr))
	assert.True(t, model.deleted)
}

func TestWaitUntilReadyNeverReturnsProcessing(t *testing.T) {
	model := &fakeModel{
		statuses: []domain.HandleStatus{domain.StatusPending, domain.StatusProcessing, domain.StatusProcessing, domain.StatusReady},
	}
	svc := newService(t, model)

	h, _, err := svc.WaitUntilReady(context.Background(), model.handle("p", domain.StatusPending))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, h.Status)
}

func TestWaitUntilReadyDeadline(t *testing.T) {
	model := &fakeModel{
		statuses: []domain.HandleStatus{domain.StatusProcessing},
	}
	svc := newService(t, model)
	svc.PollDeadline = 20 * time.Millisecond
	svc.PollInterval = 5 * time.Millisecond

	_, _, err := svc.WaitUntilReady(context.Background(), model.handle("p", domain.StatusProcessing))
	assert.ErrorIs(t, err, domain.ErrPollTimeout)
}

func TestWaitUntilReadyCancellation(t *testing.T) {
	model := &fakeModel{
		statuses: []domain.HandleStatus{domain.StatusProcessing},
	}
	svc := newService(t, model)
	svc.PollInterval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.WaitUntilReady(ctx, model.handle("p", domain.StatusProcessing))
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeClock advances its notion of now by d on every After call, so the
// poller's elapsed time and its sleeps move in lockstep without real waiting.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

func TestWaitUntilReadySlowWarning(t *testing.T) {
	model := &fakeModel{
		statuses:  []domain.HandleStatus{domain.StatusProcessing, domain.StatusProcessing, domain.StatusProcessing, domain.StatusReady},
		generated: "ok",
	}
	svc := newService(t, model)
	svc.Clock = &fakeClock{now: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)}
	svc.PollInterval = 20 * time.Second
	svc.WarnAfter = 30 * time.Second
	svc.PollDeadline = 5 * time.Minute

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{
		Query:    "q",
		Media:    strings.NewReader("x"),
		Filename: "a.mov",
	})
	require.NoError(t, err)
	assert.True(t, res.SlowWarning)
}

func TestWaitUntilReadyNoWarningWhenFast(t *testing.T) {
	model := &fakeModel{
		statuses:  []domain.HandleStatus{domain.StatusProcessing, domain.StatusReady},
		generated: "ok",
	}
	svc := newService(t, model)
	svc.Clock = &fakeClock{now: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)}
	svc.PollInterval = 20 * time.Second
	svc.WarnAfter = 30 * time.Second
	svc.PollDeadline = 5 * time.Minute

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{
		Query:    "q",
		Media:    strings.NewReader("x"),
		Filename: "a.mov",
	})
	require.NoError(t, err)
	assert.False(t, res.SlowWarning)
}
