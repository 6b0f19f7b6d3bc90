package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/config"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/library"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/storage"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/trace"
)

// #region main
func main() {
	sessions := flag.Int("sessions", 0, "list the N most recent evaluation sessions")
	entries := flag.Int("library", 0, "list the N most recent library entries")
	session := flag.String("session", "", "show one session with its step results and trace")
	flag.Parse()

	if *sessions == 0 && *entries == 0 && *session == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if *sessions > 0 {
		store, err := results.NewStore(db)
		if err != nil {
			log.Fatalf("result store: %v", err)
		}
		recs, err := store.ListSessions(ctx, *sessions)
		if err != nil {
			log.Fatalf("list sessions: %v", err)
		}
		for _, r := range recs {
			fmt.Printf("%s  candidate=%s v%d  verdict=%s  finalScore=%.4f  %s\n",
				r.SessionID, r.CandidateID, r.Version, r.Verdict, r.FinalScore, r.FinishedAt.Format("2006-01-02 15:04:05"))
		}
	}

	if *entries > 0 {
		store, err := library.NewStore(db)
		if err != nil {
			log.Fatalf("library store: %v", err)
		}
		list, err := store.List(ctx, *entries)
		if err != nil {
			log.Fatalf("list library: %v", err)
		}
		for _, e := range list {
			fmt.Printf("%s  candidate=%s v%d  session=%s  finalScore=%.4f  %q\n",
				e.EntryID, e.CandidateID, e.Version, e.SessionID, e.FinalScore, e.Title)
		}
	}

	if *session != "" {
		store, err := results.NewStore(db)
		if err != nil {
			log.Fatalf("result store: %v", err)
		}
		rec, err := store.GetSession(ctx, *session)
		if err != nil {
			log.Fatalf("get session: %v", err)
		}
		fmt.Printf("session %s  candidate=%s v%d  pipeline=%s\n", rec.SessionID, rec.CandidateID, rec.Version, rec.PipelineID)
		fmt.Printf("  overall=%v verdict=%s finalScore=%.4f reason=%q\n", rec.Overall, rec.Verdict, rec.FinalScore, rec.Reason)
		for _, s := range rec.Steps {
			fmt.Printf("  step %d %-12s score=%.4f passed=%v retries=%d\n",
				s.StepNumber, s.Name, s.Score, s.Passed, s.RetryCount)
		}

		sink, err := trace.NewSQLiteSink(db, cfg.TraceTTL)
		if err != nil {
			log.Fatalf("trace sink: %v", err)
		}
		events, err := sink.SessionEvents(ctx, *session)
		if err != nil {
			log.Fatalf("session trace: %v", err)
		}
		for _, ev := range events {
			fmt.Printf("  %s  [step %d] %-10s %s\n",
				ev.CreatedAt.Format("15:04:05.000"), ev.StepNumber, ev.Kind, ev.Message)
		}
	}
}
// #endregion main
