package web

// Handler declares routes on a Router.
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A returned error is passed to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler or middleware.
type ErrorHandler func(Context, error) error
