package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/config"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/storage"
)

// #region input-shapes
type candidateInput struct {
	ID          string `json:"id"`
	Version     int    `json:"version"`
	SubmitterID string `json:"submitterId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
}

type stepInput struct {
	StepNumber          int     `json:"stepNumber"`
	Name                string  `json:"name"`
	Threshold           float64 `json:"threshold"`
	InstructionTemplate string  `json:"instructionTemplate"`
}
// #endregion input-shapes

// #region main
func main() {
	candidatesPath := flag.String("candidates", "", "JSON file with an array of candidates to insert")
	stepsPath := flag.String("steps", "", "JSON file with an array of step configs to install")
	pipeline := flag.String("pipeline", "", "pipeline id for -steps; defaults to PIPELINE_ID")
	flag.Parse()

	if *candidatesPath == "" && *stepsPath == "" {
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

	if *candidatesPath != "" {
		store, err := candidate.NewStore(db)
		if err != nil {
			log.Fatalf("candidate store: %v", err)
		}
		var inputs []candidateInput
		if err := readJSON(*candidatesPath, &inputs); err != nil {
			log.Fatalf("read candidates: %v", err)
		}
		for _, in := range inputs {
			c := candidate.Candidate{
				ID:          in.ID,
				Version:     in.Version,
				SubmitterID: in.SubmitterID,
				Title:       in.Title,
				Content:     in.Content,
				Category:    in.Category,
				CreatedAt:   time.Now().UTC(),
			}
			if c.Version == 0 {
				c.Version = 1
			}
			if err := store.Put(ctx, c); err != nil {
				log.Fatalf("put candidate %s v%d: %v", c.ID, c.Version, err)
			}
		}
		fmt.Printf("inserted %d candidate(s)\n", len(inputs))
	}

	if *stepsPath != "" {
		registry, err := stepcfg.NewRegistry(db)
		if err != nil {
			log.Fatalf("step registry: %v", err)
		}
		var inputs []stepInput
		if err := readJSON(*stepsPath, &inputs); err != nil {
			log.Fatalf("read steps: %v", err)
		}
		steps := make([]stepcfg.StepConfig, 0, len(inputs))
		for _, in := range inputs {
			steps = append(steps, stepcfg.StepConfig{
				StepNumber:          in.StepNumber,
				Name:                in.Name,
				Threshold:           in.Threshold,
				InstructionTemplate: in.InstructionTemplate,
			})
		}
		pid := *pipeline
		if pid == "" {
			pid = cfg.PipelineID
		}
		if err := registry.SaveSteps(ctx, pid, steps); err != nil {
			log.Fatalf("save steps: %v", err)
		}
		fmt.Printf("installed %d step(s) for pipeline %s\n", len(steps), pid)
	}
}
// #endregion main

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
