package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/handlers"
	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/store/memory"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/session"
	"github.com/dmitrymomot/folio/pkg/storage"
)

const (
	baseURL  = "https://blog.example.com"
	password = "correct horse battery"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeStorage) Put(_ context.Context, r io.Reader, size int64, _ ...storage.Option) (*storage.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := "blog-uploads/" + string(rune('a'+len(f.objects))) + ".png"
	f.objects[key] = data
	return &storage.FileInfo{Key: key, URL: f.PublicURL(key), Size: size, ContentType: "image/png", ACL: storage.ACLPublicRead}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string { return "https://cdn.example.com/" + key }

type env struct {
	app      *web.App
	articles *article.Service
	users    *user.Service
	storage  *fakeStorage
}

type envOption func(*envConfig)

type envConfig struct {
	baseURL      string
	noStorage    bool
	sitemapCache bool
}

func withoutBaseURL() envOption   { return func(c *envConfig) { c.baseURL = "" } }
func withoutStorage() envOption   { return func(c *envConfig) { c.noStorage = true } }
func withSitemapCache() envOption { return func(c *envConfig) { c.sitemapCache = true } }

// maxLoginAttempts is the lockout threshold of the test throttle.
const maxLoginAttempts = 3

func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()

	cfg := envConfig{baseURL: baseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	users := user.NewService(memory.NewUserStore(), user.WithCost(bcrypt.MinCost))
	manager := auth.NewManager(users, session.NewMemoryStore(),
		auth.WithThrottle(auth.NewThrottle(cache.NewMemoryCounter(), maxLoginAttempts, time.Minute)),
	)
	builder := canonical.NewBuilder(cfg.baseURL)
	articles := article.NewService(memory.NewArticleStore(), builder)

	fs := &fakeStorage{objects: make(map[string][]byte)}
	mediaOpts := []media.Option{media.WithMaxUploadSize(1 << 10)}
	if !cfg.noStorage {
		mediaOpts = append(mediaOpts, media.WithStorage(fs))
	}
	mediaSvc := media.NewService(memory.NewMediaStore(), mediaOpts...)

	cookies, err := cookie.New(strings.Repeat("s", cookie.MinSecretLength))
	require.NoError(t, err)
	pages, err := handlers.NewPages(handlers.Site{Name: "Folio", Description: "Notes on building things"})
	require.NoError(t, err)

	var blogOpts []handlers.BlogOption
	if cfg.sitemapCache {
		blogOpts = append(blogOpts, handlers.WithSitemapCache(cache.NewMemory[[]handlers.SitemapURL](), time.Minute))
	}
	blog := handlers.NewBlogHandler(articles, pages, builder, blogOpts...)
	app := web.New(
		web.WithCookies(cookies),
		web.WithErrorHandler(handlers.ErrorHandler(pages)),
		web.WithNotFoundHandler(blog.NotFound),
		web.WithHandlers(
			handlers.NewAuthHandler(manager),
			handlers.NewArticleHandler(articles, manager),
			handlers.NewMediaHandler(mediaSvc, manager),
			blog,
		),
	)

	return &env{app: app, articles: articles, users: users, storage: fs}
}

// userToken creates a user with role and signs in through the API.
func (e *env) userToken(t *testing.T, email string, role user.Role) string {
	t.Helper()

	_, err := e.users.Create(context.Background(), user.CreateInput{Name: string(role), Email: email, Password: password, Role: role})
	require.NoError(t, err)

	w := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
