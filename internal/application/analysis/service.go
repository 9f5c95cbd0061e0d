package analysis

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studio540/bjj-analyzer/internal/application"
	domain "github.com/studio540/bjj-analyzer/internal/domain/analysis"
	"github.com/studio540/bjj-analyzer/internal/infra/ai/prompt"
)

// Ingestor port: persist an uploaded stream to a scoped temp file. The
// cleanup func must run on every exit path.
type Ingestor interface {
	Ingest(r io.Reader, filename string) (path string, mimeType string, cleanup func(), err error)
}

// Service implements use-cases untuk analisis video.
// Service is designed to be used concurrently and is thread-safe.
type Service struct {
	Model     domain.VideoModel
	Repo      domain.Repository
	Artifacts domain.ArtifactStore // optional, nil disables artifact upload
	Ingest    Ingestor
	Clock     application.Clock

	// Poller tuning. Zero values fall back to 1s / 60s / 5m.
	PollInterval time.Duration
	WarnAfter    time.Duration
	PollDeadline time.Duration
}

// Command untuk analisis
type AnalyzeCommand struct {
	Query    string
	Media    io.Reader
	Filename string
}

// Analyze jalankan satu request penuh: ingest → submit → poll → prompt →
// generate → simpan hasil. Temp file dan remote media dibersihkan di semua
// jalur keluar.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Result, error) {
	query := strings.TrimSpace(cmd.Query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	localPath, mimeType, cleanup, err := s.Ingest.Ingest(cmd.Media, cmd.Filename)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	start := s.Clock.Now()

	handle, err := s.Model.Submit(ctx, localPath, mimeType)
	if err != nil {
		return nil, err
	}
	// remote media tidak dipakai lagi setelah request selesai, sukses
	// ataupun gagal
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if derr := s.Model.Delete(dctx, handle); derr != nil {
			log.Printf("warning: remote media cleanup failed: remote_id=%s err=%v", handle.RemoteID, derr)
		}
	}()

	ready, warned, err := s.WaitUntilReady(ctx, handle)
	if err != nil {
		return nil, err
	}
	handle = ready

	// request immutable setelah disusun
	req := domain.Request{
		UserQuery:  query,
		PromptText: prompt.Compose(query),
		Handle:     ready,
	}

	text, err := s.Model.Generate(ctx, req.PromptText, req.Handle)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	res := &domain.Result{
		ID:          domain.AnalysisID(uuid.New().String()),
		Query:       query,
		MediaName:   cmd.Filename,
		Text:        text,
		GeneratedAt: now,
		DurationMS:  now.Sub(start).Milliseconds(),
		SlowWarning: warned,
	}

	if s.Artifacts != nil {
		key := fmt.Sprintf("analyses/%s.md", res.ID)
		url, aerr := s.Artifacts.UploadBytes(ctx, key, []byte(text), "text/markdown")
		if aerr != nil {
			// artefak opsional; hasil tetap dikembalikan
			log.Printf("warning: artifact upload failed: id=%s err=%v", res.ID, aerr)
		} else {
			res.ArtifactURL = url
		}
	}

	if err := s.Repo.Save(ctx, res); err != nil {
		return nil, err
	}
	log.Printf("analysis generated: id=%s media=%s prompt=%s duration_ms=%d slow=%t",
		res.ID, cmd.Filename, prompt.TemplateVersion, res.DurationMS, warned)
	return res, nil
}

// Get ambil 1 hasil by id
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Result, error) {
	return s.Repo.Get(ctx, id)
}

// Latest ambil N hasil terakhir
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Result, error) {
	return s.Repo.Latest(ctx, limit)
}
