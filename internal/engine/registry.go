package engine

import (
	"math/rand"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/handlers"
)

// buildRegistry wires every AI verb to its handler, the command catalog
// itself (§4.4, §9 "dynamic dispatch of verbs"). A fresh registry is built
// per Engine rather than shared, since ForkHandler and IncantationHandler
// carry per-game state (a spawn rng, in-flight ritual bookkeeping).
func buildRegistry(rng *rand.Rand) *catalog.Registry {
	r := catalog.NewRegistry()
	r.Register(handlers.ForwardHandler{})
	r.Register(handlers.RightHandler{})
	r.Register(handlers.LeftHandler{})
	r.Register(handlers.LookHandler{})
	r.Register(handlers.InventoryHandler{})
	r.Register(handlers.BroadcastHandler{})
	r.Register(handlers.ConnectNbrHandler{})
	r.Register(handlers.ForkHandler{Rng: rng})
	r.Register(handlers.EjectHandler{})
	r.Register(handlers.TakeHandler{})
	r.Register(handlers.SetHandler{})
	r.Register(handlers.NewIncantationHandler())
	return r
}
