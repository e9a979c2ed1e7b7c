// Package app assembles the repositories selected by the configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/amberbeaumont/IThelpdesklite/internal/config"
	"github.com/amberbeaumont/IThelpdesklite/internal/database"
	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository/memory"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository/postgres"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository/sqlite"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

// DemoPassword is the login for every seeded user when DATA_SOURCE=memory.
const DemoPassword = "helpdesk-demo"

type Stores struct {
	Tickets   repository.TicketRepository
	Users     repository.UserRepository
	Equipment repository.EquipmentRepository

	Notes     repository.CollectionStore[models.Note]
	Bookmarks repository.CollectionStore[models.Bookmark]
	Documents repository.CollectionStore[models.Document]
	Snippets  repository.CollectionStore[models.Snippet]

	// Ping checks the primary store; nil in memory mode.
	Ping func(ctx context.Context) error

	closers []func()
}

func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// Open builds the stores for cfg.DataSource. Both modes keep the workspace
// collections in the SQLite file at cfg.WorkspaceDB.
func Open(ctx context.Context, log zerolog.Logger, cfg config.Config) (*Stores, error) {
	s := &Stores{}

	switch cfg.DataSource {
	case "memory":
		if err := s.openMemory(); err != nil {
			return nil, err
		}
		log.Warn().Str("password", DemoPassword).Msg("serving in-memory demo data")
	default:
		pool, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		if cfg.Migrate {
			if err := database.Migrate(ctx, pool); err != nil {
				s.Close()
				return nil, fmt.Errorf("db migrate: %w", err)
			}
			log.Info().Msg("schema applied")
		}
		s.Tickets = postgres.NewTicketRepo(pool)
		s.Users = postgres.NewUserRepo(pool)
		s.Equipment = postgres.NewEquipmentRepo(pool)
		s.Ping = pool.Ping
	}

	ws, err := sqlite.New(cfg.WorkspaceDB)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("workspace db: %w", err)
	}
	s.closers = append(s.closers, func() { _ = ws.Close() })
	s.Notes = sqlite.NewCollectionStore[models.Note](ws, "notes")
	s.Bookmarks = sqlite.NewCollectionStore[models.Bookmark](ws, "bookmarks")
	s.Documents = sqlite.NewCollectionStore[models.Document](ws, "documents")
	s.Snippets = sqlite.NewCollectionStore[models.Snippet](ws, "snippets")

	if cfg.DataSource == "memory" {
		if err := seedSnippets(ctx, s.Snippets); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Stores) openMemory() error {
	seed := memory.DemoSeed(time.Now())
	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	users := memory.NewUserRepo(seed.Users...)
	for _, u := range seed.Users {
		users.SetPassword(u.ID, hash)
	}
	s.Users = users
	s.Tickets = memory.NewTicketRepo(seed.Tickets...)
	s.Equipment = memory.NewEquipmentRepo(seed.Equipment...)
	return nil
}

// seedSnippets fills an empty snippet collection with the canned replies.
func seedSnippets(ctx context.Context, store repository.CollectionStore[models.Snippet]) error {
	have, err := store.List(ctx)
	if err != nil || len(have) > 0 {
		return err
	}
	return store.ReplaceAll(ctx, memory.DemoSeed(time.Now()).Snippets)
}
