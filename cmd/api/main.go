package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/studio540/bjj-analyzer/internal/application"
	appanalysis "github.com/studio540/bjj-analyzer/internal/application/analysis"
	appnarration "github.com/studio540/bjj-analyzer/internal/application/narration"
	"github.com/studio540/bjj-analyzer/internal/config"
	domain "github.com/studio540/bjj-analyzer/internal/domain/analysis"
	domnarr "github.com/studio540/bjj-analyzer/internal/domain/narration"
	"github.com/studio540/bjj-analyzer/internal/infra/ai/gemini"
	openaiRewriter "github.com/studio540/bjj-analyzer/internal/infra/ai/openai"
	"github.com/studio540/bjj-analyzer/internal/infra/httpserver"
	"github.com/studio540/bjj-analyzer/internal/infra/media"
	"github.com/studio540/bjj-analyzer/internal/infra/sessionmem"
	minioStore "github.com/studio540/bjj-analyzer/internal/infra/storage"
	"github.com/studio540/bjj-analyzer/internal/infra/tts/elevenlabs"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config; key yang hilang fatal di sini, bukan saat request
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// init video model client
	model, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("gemini init error: %v", err)
	}

	// init session store (in-memory, hilang saat restart)
	store := sessionmem.New()

	// init artifact store opsional
	var artifacts domain.ArtifactStore
	if cfg.ArtifactsEnabled() {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = s
	}

	// init analysis service
	analysisSvc := &appanalysis.Service{
		Model:        model,
		Repo:         store,
		Artifacts:    artifacts,
		Ingest:       &media.Ingestor{},
		Clock:        application.SystemClock{},
		PollInterval: cfg.PollInterval(),
		WarnAfter:    cfg.PollWarnAfter(),
		PollDeadline: cfg.PollDeadline(),
	}

	// init narration service kalau ada key TTS
	var narrationSvc *appnarration.Service
	if cfg.NarrationEnabled() {
		var rewriter domnarr.ScriptRewriter
		if cfg.RewriteEnabled() {
			rewriter = openaiRewriter.NewRewriter(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		}
		narrationSvc = &appnarration.Service{
			TTS:       elevenlabs.NewClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.BaseURL, cfg.ElevenLabs.Model),
			Rewriter:  rewriter,
			Analyses:  store,
			Jobs:      store.Jobs(),
			Artifacts: artifacts,
			Clock:     application.SystemClock{},
		}
	} else {
		log.Println("narration disabled: no ELEVENLABS_API_KEY")
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(analysisSvc, narrationSvc, httpserver.Options{
		MaxUploadBytes:   cfg.MaxUploadBytes(),
		RateCapacity:     cfg.Server.RateCapacity,
		RateRefillPerSec: cfg.Server.RateRefillPerSec,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
		// upload + poll + generate bisa lama; write timeout harus lebih
		// longgar dari deadline poll
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: cfg.PollDeadline() + 2*time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
