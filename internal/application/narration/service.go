package narration

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/studio540/bjj-analyzer/internal/application"
	"github.com/studio540/bjj-analyzer/internal/domain/analysis"
	domain "github.com/studio540/bjj-analyzer/internal/domain/narration"
)

// Service implements use-cases untuk narasi TTS. Kegagalan di sini tidak
// pernah menyentuh hasil analisis yang sudah tersimpan.
type Service struct {
	TTS       domain.Synthesizer
	Rewriter  domain.ScriptRewriter // optional, nil berarti rewrite ditolak
	Analyses  analysis.Repository
	Jobs      domain.Repository
	Artifacts analysis.ArtifactStore // optional
	Clock     application.Clock
}

// Command untuk narasi
type NarrateCommand struct {
	AnalysisID analysis.AnalysisID
	VoiceID    string
	Rewrite    bool
}

// Narrate membuat job TTS dari hasil analisis: snapshot teks → optional
// rewrite → synthesize → simpan job. Teks sumber diambil sekali saat job
// dibuat, tidak pernah di-derive ulang dari store.
func (s *Service) Narrate(ctx context.Context, cmd NarrateCommand) (*domain.Job, error) {
	res, err := s.Analyses.Get(ctx, cmd.AnalysisID)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(res.Text)
	if source == "" {
		return nil, domain.ErrEmptyScript
	}

	voice := cmd.VoiceID
	if voice == "" {
		voice = s.TTS.DefaultVoice().ID
	}

	job := &domain.Job{
		ID:         domain.JobID(uuid.New().String()),
		AnalysisID: res.ID,
		SourceText: source,
		Script:     source,
		VoiceID:    voice,
		Status:     domain.StatusRunning,
		CreatedAt:  s.Clock.Now(),
	}

	if cmd.Rewrite {
		if s.Rewriter == nil {
			return nil, domain.ErrRewriteUnavailable
		}
		script, rerr := s.Rewriter.RewriteScript(ctx, source)
		if rerr != nil {
			return s.fail(ctx, job, fmt.Errorf("%w: rewrite: %v", domain.ErrSynthesisFailed, rerr))
		}
		job.Script = script
		job.Rewritten = true
	}

	audio, err := s.TTS.Synthesize(ctx, job.Script, job.VoiceID)
	if err != nil {
		return s.fail(ctx, job, err)
	}
	job.Audio = audio
	job.Status = domain.StatusDone

	if s.Artifacts != nil {
		key := fmt.Sprintf("narrations/%s.mp3", job.ID)
		url, aerr := s.Artifacts.UploadBytes(ctx, key, audio, "audio/mpeg")
		if aerr != nil {
			log.Printf("warning: narration artifact upload failed: id=%s err=%v", job.ID, aerr)
		} else {
			job.ArtifactURL = url
		}
	}

	if err := s.Jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Get ambil 1 job by id
func (s *Service) Get(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	return s.Jobs.Get(ctx, id)
}

// Voices mengambil daftar suara dari provider saat runtime; kalau gagal,
// jatuh ke satu default voice tetap supaya UI tetap jalan.
func (s *Service) Voices(ctx context.Context) ([]domain.Voice, error) {
	voices, err := s.TTS.ListVoices(ctx)
	if err != nil {
		log.Printf("warning: voice list unavailable, using default: %v", err)
		return []domain.Voice{s.TTS.DefaultVoice()}, nil
	}
	if len(voices) == 0 {
		return []domain.Voice{s.TTS.DefaultVoice()}, nil
	}
	return voices, nil
}

// fail simpan job gagal lalu teruskan error aslinya ke boundary.
func (s *Service) fail(ctx context.Context, job *domain.Job, cause error) (*domain.Job, error) {
	job.Status = domain.StatusFailed
	if serr := s.Jobs.Save(ctx, job); serr != nil {
		log.Printf("warning: failed narration job not saved: id=%s err=%v", job.ID, serr)
	}
	return nil, cause
}
