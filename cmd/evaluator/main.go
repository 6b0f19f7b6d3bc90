package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/config"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/library"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/logging"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/orchestrator"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/scorer"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/storage"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/trace"
)

// #region main
func main() {
	candidateID := flag.String("candidate", "", "candidate id to evaluate (required)")
	version := flag.Int("version", 1, "candidate version")
	submitter := flag.String("submitter", "", "submitter id recorded on the session")
	sessionID := flag.String("session", "", "session id; generated when empty")
	flag.Parse()

	if *candidateID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	candidates, err := candidate.NewStore(db)
	if err != nil {
		log.Fatalf("candidate store: %v", err)
	}
	registry, err := stepcfg.NewRegistry(db)
	if err != nil {
		log.Fatalf("step registry: %v", err)
	}
	resultStore, err := results.NewStore(db)
	if err != nil {
		log.Fatalf("result store: %v", err)
	}
	lib, err := library.NewStore(db)
	if err != nil {
		log.Fatalf("library store: %v", err)
	}
	sink, err := trace.NewSQLiteSink(db, cfg.TraceTTL)
	if err != nil {
		log.Fatalf("trace sink: %v", err)
	}

	ctx := context.Background()
	judge, err := scorer.NewLLMScorer(ctx, scorer.ModelConfig{
		BaseURL: cfg.ScorerBaseURL,
		APIKey:  cfg.ScorerAPIKey,
		Model:   cfg.ScorerModel,
		Timeout: cfg.ScorerTimeout,
	})
	if err != nil {
		log.Fatalf("scorer: %v", err)
	}

	ctrl := orchestrator.New(
		orchestrator.Config{PipelineID: cfg.PipelineID, MaxRetries: cfg.MaxRetries},
		orchestrator.Deps{
			Candidates: candidates,
			Steps:      registry,
			Scorer:     judge,
			Results:    resultStore,
			Publisher:  lib,
			Trace:      trace.MultiSink{sink, trace.NewLogSink(logger)},
			Logger:     logger,
		},
	)

	sid := *sessionID
	if sid == "" {
		sid = uuid.New().String()
	}

	result := ctrl.Run(ctx, orchestrator.Trigger{
		CandidateID: *candidateID,
		Version:     *version,
		SubmitterID: *submitter,
		SessionID:   sid,
		PipelineID:  cfg.PipelineID,
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("marshal result: %v", err)
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}
// #endregion main
