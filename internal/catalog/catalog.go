// Package catalog is the static verb -> {duration, handler} table AI
// commands dispatch through (§4.4, §4.7). It mirrors the action-handler
// pattern used elsewhere in this codebase: a small interface every command
// implements, and a registry keyed by verb.
package catalog

import (
	"time"

	"github.com/zappy-game/server/internal/world"
)

// Verb identifies an AI command by its wire token (§4.7).
type Verb string

const (
	Forward     Verb = "Forward"
	Right       Verb = "Right"
	Left        Verb = "Left"
	Look        Verb = "Look"
	Inventory   Verb = "Inventory"
	Broadcast   Verb = "Broadcast"
	ConnectNbr  Verb = "Connect_nbr"
	Fork        Verb = "Fork"
	Eject       Verb = "Eject"
	Take        Verb = "Take"
	Set         Verb = "Set"
	Incantation Verb = "Incantation"
)

// Durations gives each AI verb's fixed execution time, in time-units
// (§4.1, §4.7). A command's wait time is Durations[verb] / frequency
// seconds, measured from when it reaches the head of its connection's
// queue.
var Durations = map[Verb]int{
	Forward:     7,
	Right:       7,
	Left:        7,
	Look:        7,
	Inventory:   1,
	Broadcast:   7,
	ConnectNbr:  1,
	Fork:        42,
	Eject:       7,
	Take:        7,
	Set:         7,
	Incantation: 300,
}

// Context bundles everything a Handler needs to validate and process one
// command (ported from the teacher's ActionContext pattern).
type Context struct {
	World    *world.World
	Player   *world.Player
	Argument string // raw text following the verb on the wire, e.g. a resource name
	Now      time.Time

	// Emit pushes one formatted line to the bound GUI connection. It is
	// never nil — the engine wires a no-op when no GUI is bound (§9, GUI
	// fan-out).
	Emit func(line string)

	// Tell delivers a line to another AI client by player id. A no-op if
	// that id has no live connection (already disconnected or never
	// bound). Used by Broadcast and Incantation, which reach players
	// other than the command's own actor.
	Tell func(playerID int, line string)
}

// Result is the outcome of processing one command: the reply line(s) owed
// to the AI client and whether the command succeeded.
type Result struct {
	Success bool
	Reply   string // e.g. "ok\n", "ko\n", or a structured response like "[food 3,...]\n"
}

// Ok builds a successful Result carrying the given wire reply.
func Ok(reply string) Result {
	return Result{Success: true, Reply: reply}
}

// Ko builds a failed Result; by convention AI commands fail with "ko\n"
// (§4.7, §6.1).
func Ko() Result {
	return Result{Success: false, Reply: "ko\n"}
}

// Handler is one AI command's implementation.
type Handler interface {
	// Verb returns the command token this handler answers to.
	Verb() Verb

	// Process executes the command and returns its wire reply. Handlers
	// are only ever invoked once the command's duration has elapsed
	// (§4.6 step 4); they do not re-check timing themselves. An
	// incantation-locked player starts no new command, but one already in
	// flight (its own Incantation included) still reaches Process.
	Process(ctx *Context) Result
}

// Starter is implemented by handlers that must act at the moment their
// wait timer begins rather than only on completion — currently only
// Incantation, which validates eligibility up front: on failure it
// replies immediately without ever waiting out its duration; on success
// it locks co-located players and emits `pic`, then lets the command
// proceed to Process once its duration elapses (§4.6 step 4, §4.7).
//
// Start returns (done, result): if done is true the command is already
// finished — the engine delivers result.Reply and dequeues without
// waiting; if done is false the command proceeds to wait out its
// duration as usual, and result is ignored.
type Starter interface {
	Start(ctx *Context) (done bool, result Result)
}

// Registry maps verbs to their Handler, the command catalog itself.
type Registry struct {
	handlers map[Verb]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Verb]Handler)}
}

// Register adds h to the catalog, keyed by its own Verb().
func (r *Registry) Register(h Handler) {
	r.handlers[h.Verb()] = h
}

// Get looks up the handler for a verb.
func (r *Registry) Get(v Verb) (Handler, bool) {
	h, ok := r.handlers[v]
	return h, ok
}

// Duration returns the verb's fixed time-unit cost, or 0 if unknown.
func Duration(v Verb) int {
	return Durations[v]
}
