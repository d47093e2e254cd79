package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/config"
	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/store/memory"
	"github.com/dmitrymomot/folio/internal/store/postgres"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/pkg/db"
	"github.com/dmitrymomot/folio/pkg/health"
)

// stores holds the persistence layer selected by STORE_DRIVER.
type stores struct {
	articles article.Store
	media    media.Store
	users    user.Store

	pool   *pgxpool.Pool
	checks health.Checks
	hooks  []func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.WarnContext(ctx, "using in-memory store, data is lost on restart")
		return &stores{
			articles: memory.NewArticleStore(),
			media:    memory.NewMediaStore(),
			users:    memory.NewUserStore(),
			checks:   health.Checks{},
		}, nil
	}

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		articles: postgres.NewArticleStore(pool),
		media:    postgres.NewMediaStore(pool),
		users:    postgres.NewUserStore(pool),
		pool:     pool,
		checks:   health.Checks{"postgres": db.Healthcheck(pool)},
		hooks:    []func(context.Context) error{db.Shutdown(pool)},
	}, nil
}

// persistent reports an error for commands whose effect would vanish with
// the in-memory store.
func persistent(cfg *config.Config) error {
	if cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("this command needs STORE_DRIVER=%s", config.DriverPostgres)
	}
	return nil
}

// close runs the shutdown hooks in reverse order.
func (s *stores) close(ctx context.Context) error {
	var errs []error
	for _, hook := range slices.Backward(s.hooks) {
		errs = append(errs, hook(ctx))
	}
	return errors.Join(errs...)
}
