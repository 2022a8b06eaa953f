// Zomato-export ingest pipeline for dishcovery.
// Reads a dataset JSON file, flattens the restaurants[].restaurant
// envelopes and loads each record into Redis under a fresh uuid key.
// Record ids repeat across the export, so they never become keys.
//
// Usage:
//
//	loader -file zomato.json -workers 4
//
// Env vars:
//
//	REDIS_ADDR     — Redis address (default: localhost:6379)
//	REDIS_PASSWORD — Redis password
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	dbRedis "github.com/kailas-cloud/dishcovery/internal/db/redis"
	restaurantrepo "github.com/kailas-cloud/dishcovery/internal/repository/restaurant"
)

type config struct {
	file    string
	workers int
	drop    bool
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "zomato.json", "path to the dataset export JSON")
	flag.IntVar(&cfg.workers, "workers", 4, "number of parallel upsert workers")
	flag.BoolVar(&cfg.drop, "drop", false, "drop and recreate the search index first")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config) error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{addr},
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	repo := restaurantrepo.New(store)

	if cfg.drop {
		if err := store.DropIndex(ctx, repo.Index()); err != nil {
			log.Printf("drop index: %v", err)
		}
	}
	if err := repo.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	docs, err := readExport(cfg.file)
	if err != nil {
		return err
	}
	log.Printf("loaded %d records from %s", len(docs), cfg.file)

	start := time.Now()
	loaded, failed := ingest(ctx, repo, docs, cfg.workers)

	log.Printf("done: loaded=%d failed=%d elapsed=%s", loaded, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d records failed to load", failed)
	}
	return nil
}

// exportDoc mirrors one element of the dataset export: a page of
// restaurant envelopes.
type exportDoc struct {
	Restaurants []struct {
		Restaurant json.RawMessage `json:"restaurant"`
	} `json:"restaurants"`
}

// readExport flattens the export into individual restaurant documents.
func readExport(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	var pages []exportDoc
	if err := json.Unmarshal(data, &pages); err != nil {
		// Some exports carry a single top-level object instead of an array.
		var single exportDoc
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("parse export: %w", err)
		}
		pages = []exportDoc{single}
	}

	var docs []json.RawMessage
	for _, page := range pages {
		for _, env := range page.Restaurants {
			if len(env.Restaurant) > 0 {
				docs = append(docs, env.Restaurant)
			}
		}
	}
	return docs, nil
}

// ingest fans the documents out to a worker pool of upserts.
func ingest(
	ctx context.Context,
	repo *restaurantrepo.Repo,
	docs []json.RawMessage,
	workers int,
) (loaded, failed int64) {
	jobs := make(chan json.RawMessage, workers*2)
	var ok, bad atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				if err := repo.Upsert(ctx, uuid.NewString(), doc); err != nil {
					log.Printf("upsert failed: %v", err)
					bad.Add(1)
					continue
				}
				ok.Add(1)
			}
		}()
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ok.Load(), bad.Load()
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()

	return ok.Load(), bad.Load()
}
