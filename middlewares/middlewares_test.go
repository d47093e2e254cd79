package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/folio/internal/web"
)

type routes func(r web.Router)

func (f routes) Routes(r web.Router) { f(r) }

func serve(app http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	return w
}
