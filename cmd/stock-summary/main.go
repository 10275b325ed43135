package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/Duarte0903/stock-summary/internal/config"
	"github.com/Duarte0903/stock-summary/internal/pipeline"
)

var serve = flag.Bool("serve", false, "Run as a server with an HTTP trigger endpoint and optional cron schedule")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal error loading configuration: %v", err)
	}

	p := pipeline.New(cfg)

	if !*serve {
		if err := p.Run(context.Background(), nil); err != nil {
			log.Fatalf("Fatal error during run: %v", err)
		}
		return
	}

	runServer(cfg, p)
}

func runServer(cfg *config.Config, p *pipeline.Pipeline) {
	// Runs are serialized; each invocation is independent and stateless.
	var runMu sync.Mutex
	runOnce := func(event []byte) {
		runMu.Lock()
		defer runMu.Unlock()
		if err := p.Run(context.Background(), event); err != nil {
			log.Printf("Run failed: %v", err)
		}
	}

	if cfg.CronSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.CronSchedule, func() { runOnce(nil) }); err != nil {
			log.Fatalf("Invalid cron schedule %q: %v", cfg.CronSchedule, err)
		}
		c.Start()
		log.Printf("Scheduled runs with cron spec %q", cfg.CronSchedule)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /trigger", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		go runOnce(body)
		w.WriteHeader(http.StatusAccepted)
	})

	log.Printf("Listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
