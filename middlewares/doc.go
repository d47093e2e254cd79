// Package middlewares provides the HTTP middleware stack of the folio server.
//
//	app := web.New(
//	    web.WithMiddleware(
//	        middlewares.Recover(),
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.Timeout(30*time.Second),
//	        middlewares.CORS(middlewares.WithAllowOrigins("https://admin.example.com")),
//	    ),
//	)
//
// Recover and Timeout return *PanicError and *TimeoutError so the app's
// error handler decides the response. Timeout replaces the request context
// with one carrying the deadline; handlers should watch ctx.Done().
//
// RequestID stores the id in the request context. Pair it with
// RequestIDExtractor so every log record of the request carries it.
//
// RequireAuth resolves the session token from the signed session cookie or
// a bearer token and stores the principal for auth.FromContext. RequireRole
// then restricts a route group to the given roles:
//
//	r.Group(func(r web.Router) {
//	    r.Use(middlewares.RequireAuth(authManager))
//	    r.Use(middlewares.RequireRole(user.RoleAdmin, user.RoleEditor))
//	    r.POST("/api/articles", h.create)
//	})
package middlewares
