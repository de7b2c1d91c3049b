// Command seed writes the first-run snapshot of a session: the seeded
// alerts, resources and contacts, a welcome-only chat history and an empty
// cart. It either writes the snapshot to a JSON file or imports it into the
// configured Redis store.
//
// Usage:
//
//	go run ./cmd/seed -session demo -out data/seed/demo.json
//	STORE_BACKEND=redis go run ./cmd/seed -session demo
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	redisadapter "github.com/couchcryptid/disaster-helper/internal/adapter/redis"
	"github.com/couchcryptid/disaster-helper/internal/config"
	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
)

var seededAt = time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	session := flag.String("session", store.DefaultSession, "session to seed")
	out := flag.String("out", "", "write the snapshot to this JSON file instead of the store")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}

	// Fixed clock for reproducible welcome-message timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(seededAt))
	defer domain.SetClock(nil)

	ctx := context.Background()
	snap, err := buildSnapshot(ctx, *session)
	if err != nil {
		return err
	}

	if *out != "" {
		if err := writeJSON(*out, snap); err != nil {
			return err
		}
		log.Printf("wrote %d collections to %s", len(snap), *out)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreBackend != config.StoreRedis {
		return fmt.Errorf("STORE_BACKEND is %q: seeding a store requires redis (or pass -out)", cfg.StoreBackend)
	}
	backend, err := redisadapter.Connect(ctx, &goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.RedisPrefix)
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := store.Import(ctx, backend, *session, snap); err != nil {
		return err
	}
	log.Printf("seeded session %q with %d collections", *session, len(snap))
	return nil
}

// buildSnapshot hydrates every seeded collection in a scratch store and
// exports the result.
func buildSnapshot(ctx context.Context, session string) (store.Snapshot, error) {
	mem := store.NewMemory()

	if _, err := store.NewCollection(mem, store.KeyAlerts, domain.SeedAlerts).GetAll(ctx, session); err != nil {
		return nil, err
	}
	if _, err := store.NewCollection(mem, store.KeyResources, domain.SeedResources).GetAll(ctx, session); err != nil {
		return nil, err
	}
	if _, err := store.NewCollection(mem, store.KeyContacts, domain.SeedContacts).GetAll(ctx, session); err != nil {
		return nil, err
	}
	welcome := []domain.ChatMessage{domain.WelcomeMessage()}
	if err := store.NewCollection[domain.ChatMessage](mem, store.KeyChatHistory, nil).SaveAll(ctx, session, welcome); err != nil {
		return nil, err
	}
	if err := store.NewCollection[domain.CartItem](mem, store.KeyCart, nil).SaveAll(ctx, session, nil); err != nil {
		return nil, err
	}
	if err := store.NewDocument[bool](mem, store.KeyVisited).Save(ctx, session, false); err != nil {
		return nil, err
	}

	return store.Export(ctx, mem, session)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644) //nolint:gosec // fixture file
}
