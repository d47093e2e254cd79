// Package web is folio's HTTP layer: a thin application wrapper over
// [github.com/go-chi/chi/v5] where handlers return errors.
//
//	app := web.New(
//		web.WithLogger(log),
//		web.WithCookies(cookies),
//		web.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		web.WithErrorHandler(handlers.ErrorHandler(pages)),
//		web.WithHandlers(articlesHandler, blogHandler),
//		web.WithHealthChecks(health.Checks{"db": db.Healthcheck(pool)}),
//	)
//	return app.Run(ctx, ":8080", web.ShutdownHook(db.Shutdown(pool)))
//
// Handlers implement [Handler] and declare routes on a [Router]:
//
//	func (h *Articles) Routes(r web.Router) {
//		r.GET("/api/articles/{id}", h.get)
//	}
//
// A [HandlerFunc] receives a [Context], which is also a context.Context and
// can be passed straight to services. Returned errors reach the app's
// [ErrorHandler] unless a response was already written. [HTTPError] carries
// a status code and a client-safe message.
package web
