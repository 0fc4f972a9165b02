// Package bootstrap assembles a session (store, tracker, generator, planner)
// from configuration. Both binaries start through here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alcyxob/vitality-planner/internal/config"
	"alcyxob/vitality-planner/internal/genai"
	"alcyxob/vitality-planner/internal/repository"
	"alcyxob/vitality-planner/internal/repository/blob"
	"alcyxob/vitality-planner/internal/repository/file"
	"alcyxob/vitality-planner/internal/repository/memory"
	"alcyxob/vitality-planner/internal/repository/mongo"
	"alcyxob/vitality-planner/internal/repository/sqlite"
	"alcyxob/vitality-planner/internal/service"
	"alcyxob/vitality-planner/internal/storage"
)

// ErrUnknownBackend is returned for an unsupported store.backend value.
var ErrUnknownBackend = errors.New("unknown store backend")

// Session is a ready-to-use planner plus the resources behind it.
type Session struct {
	Planner *service.Planner
	Store   repository.SessionStore
	closers []func() error
}

// Close releases database connections. It is safe to call more than once.
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenSessionStore builds the configured SessionStore. The returned close
// function is never nil.
func OpenSessionStore(ctx context.Context, cfg config.Config) (repository.SessionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), noop, nil

	case config.BackendFile, "":
		store, err := file.NewStore(cfg.Store.Dir)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("INFO: Session store: files in %s", cfg.Store.Dir)
		return store, noop, nil

	case config.BackendSQLite:
		database, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite handle: %w", err)
		}
		log.Printf("INFO: Session store: sqlite %s (namespace %s)", cfg.Store.SQLitePath, cfg.Store.Namespace)
		return sqlite.NewStore(database, cfg.Store.Namespace), sqlDB.Close, nil

	case config.BackendMongo:
		client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return nil, noop, err
		}
		db := client.Database(cfg.Database.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		mongo.EnsureSlotIndexes(indexCtx, mongo.SlotCollection(db))
		cancel()

		log.Printf("INFO: Session store: mongo database %s (namespace %s)", cfg.Database.Name, cfg.Store.Namespace)
		closeFn := func() error {
			log.Println("INFO: Disconnecting MongoDB...")
			return mongo.DisconnectDB(client)
		}
		return mongo.NewMongoSlotRepository(db, cfg.Store.Namespace), closeFn, nil

	case config.BackendS3:
		objects, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return blob.NewStore(objects, cfg.S3.Prefix, cfg.Store.Namespace), noop, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Backend)
	}
}

// NewSession opens the store and restores the planner and tracker from it.
func NewSession(ctx context.Context, cfg config.Config) (*Session, error) {
	loc, err := cfg.Tracker.Location()
	if err != nil {
		return nil, fmt.Errorf("tracker timezone: %w", err)
	}

	store, closeStore, err := OpenSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Gemini.APIKey == "" {
		log.Println("WARN: No generation credential configured (GEMINI_API_KEY or API_KEY); plan generation will fail")
	}
	transport := genai.NewGeminiClient(cfg.Gemini.BaseURL, cfg.Gemini.Timeout)
	generator := service.NewGenerationService(transport, cfg.Gemini.APIKey, cfg.Gemini.Model)

	tracker := service.NewTracker(ctx, store, loc, time.Now)
	planner := service.NewPlanner(ctx, store, generator, tracker,
		service.WithStatusInterval(cfg.Status.Interval))

	return &Session{
		Planner: planner,
		Store:   store,
		closers: []func() error{closeStore},
	}, nil
}
