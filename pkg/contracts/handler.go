package contracts

import "github.com/julienschmidt/httprouter"

// Guard wraps a route that requires an authenticated caller.
type Guard func(httprouter.Handle) httprouter.Handle

type Handler interface {
	RegisterRoutes(router *httprouter.Router, guard Guard)
}

// Open is a Guard that lets every request through.
func Open(next httprouter.Handle) httprouter.Handle {
	return next
}
