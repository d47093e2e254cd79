package cli

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/config"
	"github.com/dmitrymomot/folio/internal/handlers"
	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/session"
	"github.com/dmitrymomot/folio/pkg/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, flush, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateServer(); err != nil {
				return err
			}
			if err := serve(cmd.Context(), cfg, log, flush); err != nil {
				log.Error("server stopped", logger.Error(err))
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, flush func(context.Context) error) error {
	cookies, err := cookie.New(cfg.Auth.CookieSecret,
		cookie.WithDomain(cfg.Auth.CookieDomain),
		cookie.WithSecure(cfg.Auth.CookieSecure),
	)
	if err != nil {
		return err
	}
	pages, err := handlers.NewPages(handlers.Site{Name: cfg.SiteName, Description: cfg.SiteDescription})
	if err != nil {
		return err
	}
	var s3 *storage.S3Storage
	if cfg.Storage.Configured() {
		if s3, err = storage.New(cfg.Storage); err != nil {
			return err
		}
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	rdb, err := openRedis(ctx, cfg, log, st)
	if err != nil {
		return errors.Join(err, st.close(context.WithoutCancel(ctx)))
	}

	var (
		sessions session.Store
		attempts cache.Counter
		sitemaps cache.Cache[[]handlers.SitemapURL]
	)
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
		attempts = cache.NewRedisCounter(rdb, cache.WithPrefix("folio:auth"))
		sitemaps = cache.NewRedis[[]handlers.SitemapURL](rdb, cache.WithPrefix("folio:sitemap"))
	} else {
		sessions = session.NewMemoryStore()
		attempts = cache.NewMemoryCounter(cache.WithMaxEntries(10000))
		sitemaps = cache.NewMemory[[]handlers.SitemapURL]()
	}

	users := user.NewService(st.users)
	authManager := auth.NewManager(users, sessions,
		auth.WithTTL(cfg.Auth.SessionTTL),
		auth.WithLogger(log),
		auth.WithThrottle(auth.NewThrottle(attempts, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout)),
	)
	if err := bootstrapAdmin(ctx, cfg, users, log); err != nil {
		return errors.Join(err, st.close(context.WithoutCancel(ctx)))
	}

	builder := cfg.Canonical()
	if builder.BaseURL() == "" {
		log.WarnContext(ctx, "BASE_URL is not set, articles without an explicit canonical URL cannot be saved")
	}
	articles := article.NewService(st.articles, builder)

	mediaOpts := []media.Option{
		media.WithMaxUploadSize(cfg.Media.MaxUploadSize),
		media.WithLogger(log),
	}
	if s3 != nil {
		mediaOpts = append(mediaOpts, media.WithStorage(s3))
		st.checks["storage"] = s3.Healthcheck()
	}
	mediaSvc := media.NewService(st.media, mediaOpts...)

	mw := []web.Middleware{
		middlewares.Recover(),
		middlewares.RequestID(),
		middlewares.AccessLog(),
		middlewares.Timeout(cfg.HTTP.RequestTimeout),
	}
	if len(cfg.HTTP.CORSOrigins) > 0 {
		mw = append(mw, middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.HTTP.CORSOrigins...),
			middlewares.WithAllowCredentials(),
			middlewares.WithExposeHeaders("X-Request-ID"),
		))
	}

	blog := handlers.NewBlogHandler(articles, pages, builder,
		handlers.WithSitemapCache(sitemaps, cfg.HTTP.SitemapCacheTTL),
	)
	app := web.New(
		web.WithLogger(log),
		web.WithMiddleware(mw...),
		web.WithCookies(cookies),
		web.WithErrorHandler(handlers.ErrorHandler(pages)),
		web.WithNotFoundHandler(blog.NotFound),
		web.WithHealthChecks(st.checks),
		web.WithHandlers(
			handlers.NewAuthHandler(authManager),
			handlers.NewArticleHandler(articles, authManager),
			handlers.NewMediaHandler(mediaSvc, authManager),
			blog,
		),
	)

	opts := []web.RunOption{
		web.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		web.WriteTimeout(cfg.HTTP.RequestTimeout + 10*time.Second),
	}
	for _, hook := range slices.Backward(st.hooks) {
		opts = append(opts, web.ShutdownHook(hook))
	}
	opts = append(opts, web.ShutdownHook(flush))

	log.InfoContext(ctx, "starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("store", cfg.StoreDriver),
		slog.Bool("redis", rdb != nil),
		slog.Bool("uploads", mediaSvc.UploadConfigured()),
	)
	return app.Run(ctx, cfg.HTTP.Addr, opts...)
}

// openRedis connects when REDIS_URL is set and returns nil otherwise, in
// which case sessions and caches stay in process.
// Its health check and shutdown hook are registered on st.
func openRedis(ctx context.Context, cfg *config.Config, log *slog.Logger, st *stores) (goredis.UniversalClient, error) {
	if !cfg.Redis.Configured() {
		if cfg.Production() {
			log.WarnContext(ctx, "REDIS_URL is not set, sessions are kept in memory and lost on restart")
		}
		return nil, nil
	}

	client, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	st.checks["redis"] = redis.Healthcheck(client)
	st.hooks = append(st.hooks, redis.Shutdown(client))
	return client, nil
}

// bootstrapAdmin creates the ADMIN_EMAIL account unless it already exists.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, users *user.Service, log *slog.Logger) error {
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		return nil
	}
	u, err := users.Create(ctx, user.CreateInput{
		Name:     "Administrator",
		Email:    cfg.Auth.AdminEmail,
		Password: cfg.Auth.AdminPassword,
		Role:     user.RoleAdmin,
	})
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		return nil
	case err != nil:
		return err
	}
	log.InfoContext(ctx, "admin account created", slog.String("user_id", u.ID))
	return nil
}
