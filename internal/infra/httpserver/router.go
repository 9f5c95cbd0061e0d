package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/studio540/bjj-analyzer/internal/application/analysis"
	appnarration "github.com/studio540/bjj-analyzer/internal/application/narration"
	domain "github.com/studio540/bjj-analyzer/internal/domain/analysis"
	domnarr "github.com/studio540/bjj-analyzer/internal/domain/narration"
	"github.com/studio540/bjj-analyzer/internal/middleware"
)

type Router struct {
	analysisSvc    *appanalysis.Service
	narrationSvc   *appnarration.Service // nil kalau narration tidak dikonfigurasi
	maxUploadBytes int64
}

type Options struct {
	MaxUploadBytes   int64
	RateCapacity     int
	RateRefillPerSec int
}

func NewRouter(analysisSvc *appanalysis.Service, narrationSvc *appnarration.Service, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 100 << 20
	}
	r := &Router{
		analysisSvc:    analysisSvc,
		narrationSvc:   narrationSvc,
		maxUploadBytes: opts.MaxUploadBytes,
	}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if opts.RateCapacity > 0 {
		limiter := middleware.NewRateLimiter(opts.RateCapacity, opts.RateRefillPerSec)
		mux.Use(limiter.Middleware)
	}

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"narration": middleware.ConfiguredChecker(narrationSvc != nil),
	}))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyses", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGetAnalysis))
		rt.Get("/analyses/{id}/download", r.wrap(r.handleDownload))
		rt.Post("/analyses/{id}/narration", r.wrap(r.handleNarrate))
		rt.Get("/voices", r.wrap(r.handleVoices))
		rt.Get("/narrations/{id}", r.wrap(r.handleGetNarration))
		rt.Get("/narrations/{id}/audio", r.wrap(r.handleAudio))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// transport-level request problems; bukan domain error
var (
	errInvalidBody    = errors.New("invalid request body")
	errUploadTooLarge = errors.New("upload too large")
)

// wrap adalah satu-satunya boundary error→HTTP. Semua error remote ditangkap
// di sini, tidak ada yang di-retry, tidak ada yang bikin proses mati.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, domnarr.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domain.ErrEmptyQuery),
				errors.Is(err, domain.ErrUnsupportedFormat),
				errors.Is(err, domnarr.ErrEmptyScript),
				errors.Is(err, domnarr.ErrRewriteUnavailable),
				errors.Is(err, errInvalidBody):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, errUploadTooLarge):
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			case errors.Is(err, domain.ErrPollTimeout):
				http.Error(w, err.Error(), http.StatusGatewayTimeout)
			case errors.Is(err, domnarr.ErrRateLimited):
				http.Error(w, "tts rate limit exceeded", http.StatusTooManyRequests)
			case errors.Is(err, domnarr.ErrAuth):
				http.Error(w, "tts authentication failed", http.StatusUnauthorized)
			case errors.Is(err, domain.ErrSubmissionFailed),
				errors.Is(err, domain.ErrProcessingFailed),
				errors.Is(err, domain.ErrGenerationFailed),
				errors.Is(err, domnarr.ErrSynthesisFailed):
				http.Error(w, err.Error(), http.StatusBadGateway)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/analyses
// multipart/form-data: field "video" (mp4/mov/avi) + field "query".
// Sinkron: response adalah hasil analisis penuh. Poll di-bound oleh context
// request plus deadline service.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUploadBytes)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: upload exceeds %d bytes", errUploadTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("%w: malformed multipart upload: %v", errInvalidBody, err)
	}
	defer func() {
		if req.MultipartForm != nil {
			_ = req.MultipartForm.RemoveAll()
		}
	}()

	query := req.FormValue("query")
	if err := middleware.ValidateQuery(query); err != nil {
		return err
	}

	file, header, err := req.FormFile("video")
	if err != nil {
		return fmt.Errorf("%w: video file is required", errInvalidBody)
	}
	defer file.Close()

	if err := middleware.ValidateVideoFilename(header.Filename); err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	res, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		Query:    query,
		Media:    file,
		Filename: header.Filename,
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// GET /v1/analyses?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.analysisSvc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/analyses/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	res, err := r.analysisSvc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// GET /v1/analyses/{id}/download → artefak markdown; bytes identik dengan
// teks analisis (UTF-8).
func (r *Router) handleDownload(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	res, err := r.analysisSvc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bjj_technique_analysis.md"`)
	_, err = w.Write([]byte(res.Text))
	return err
}

// POST /v1/analyses/{id}/narration
// Body: {"voice_id": "...", "rewrite": true}
func (r *Router) handleNarrate(w http.ResponseWriter, req *http.Request) error {
	if r.narrationSvc == nil {
		http.Error(w, "narration not configured", http.StatusServiceUnavailable)
		return nil
	}
	id := chi.URLParam(req, "id")

	var body struct {
		VoiceID string `json:"voice_id"`
		Rewrite bool   `json:"rewrite"`
	}
	if req.Body != nil && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return fmt.Errorf("%w: %v", errInvalidBody, err)
		}
	}

	middleware.IncrementNarrations()
	job, err := r.narrationSvc.Narrate(req.Context(), appnarration.NarrateCommand{
		AnalysisID: domain.AnalysisID(id),
		VoiceID:    body.VoiceID,
		Rewrite:    body.Rewrite,
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(job)
}

// GET /v1/voices
func (r *Router) handleVoices(w http.ResponseWriter, req *http.Request) error {
	if r.narrationSvc == nil {
		http.Error(w, "narration not configured", http.StatusServiceUnavailable)
		return nil
	}

	voices, err := r.narrationSvc.Voices(req.Context())
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(voices)
}

// GET /v1/narrations/{id}
func (r *Router) handleGetNarration(w http.ResponseWriter, req *http.Request) error {
	if r.narrationSvc == nil {
		http.Error(w, "narration not configured", http.StatusServiceUnavailable)
		return nil
	}
	id := chi.URLParam(req, "id")

	job, err := r.narrationSvc.Get(req.Context(), domnarr.JobID(id))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(job)
}

// GET /v1/narrations/{id}/audio → mp3 hasil sintesis
func (r *Router) handleAudio(w http.ResponseWriter, req *http.Request) error {
	if r.narrationSvc == nil {
		http.Error(w, "narration not configured", http.StatusServiceUnavailable)
		return nil
	}
	id := chi.URLParam(req, "id")

	job, err := r.narrationSvc.Get(req.Context(), domnarr.JobID(id))
	if err != nil {
		return err
	}
	if job.Status != domnarr.StatusDone || len(job.Audio) == 0 {
		http.Error(w, "narration audio not available", http.StatusConflict)
		return nil
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="bjj_technique_analysis.mp3"`)
	_, err = w.Write(job.Audio)
	return err
}
