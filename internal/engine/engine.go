// Package engine is the single-threaded cooperative scheduler that ties
// the world, the spawner, the command catalog and the network layer
// together (§4.6, §5, §9). Nothing in this package spawns a goroutine for
// per-connection work; every tick runs start-to-finish on the caller's
// goroutine, exactly the concurrency contract §5 requires.
package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/zappy-game/server/internal/catalog"
	"github.com/zappy-game/server/internal/clock"
	"github.com/zappy-game/server/internal/netio"
	"github.com/zappy-game/server/internal/queue"
	"github.com/zappy-game/server/internal/spawner"
	"github.com/zappy-game/server/internal/world"
)

// foodTickTimeUnits is how often, in time-units, an ALIVE player's food
// decrements by one (§4.6 step 5).
const foodTickTimeUnits = 126

// listenerFDID and other reserved poller ids never collide with a real
// connection id, which the engine allocates starting at 1.
const listenerFDID = -1

// Config configures a new Engine. Listener must already be bound and
// listening; the Engine takes ownership of it.
type Config struct {
	Listener     net.Listener
	Width        int
	Height       int
	Frequency    int
	TeamNames    []string
	SlotsPerTeam int
	Seed         int64
}

// TeamResult is one team's standing at game end, part of GameSummary.
type TeamResult struct {
	Name         string
	PlayersAlive int
}

// GameSummary describes a finished game, handed to OnGameOver for optional
// recording (§ DOMAIN STACK — internal/telemetry's match-history recorder).
type GameSummary struct {
	Winner   string
	Teams    []TeamResult
	Duration time.Duration
}

// Engine owns the world, the spawner, the command catalog and every
// tracked connection, and drives the poll-based scheduler loop (§4.6).
type Engine struct {
	Frequency int

	// sessionID identifies this one run of the server, for logs and the
	// dashboard (§ DOMAIN STACK) — never sent over the wire protocol, which
	// identifies players and eggs by their small integer slot index.
	sessionID uuid.UUID

	world    *world.World
	spawner  *spawner.Spawner
	clock    *clock.Clock
	registry *catalog.Registry
	rng      *rand.Rand

	listener   net.Listener
	listenerFD int
	poller     *netio.Poller

	conns      map[int]*connection
	playerConn map[int]int // player id -> connection id
	nextConnID int
	guiConnID  int // 0 = no GUI bound

	startedAt         time.Time
	pendingGUIQueries []string

	winner string

	// OnGameOver, if set, is invoked once after the win condition fires
	// (§4.6 step 8), before Run returns.
	OnGameOver func(GameSummary)

	// Mirror, if set, receives every event line emitGUI sends to the bound
	// GUI connection, in addition to the GUI socket itself — the Redis
	// live-event fan-out (§ DOMAIN STACK). Nothing is mirrored while no GUI
	// is bound, and the connection-sync sequence and query replies written
	// straight to the GUI socket are not mirrored.
	Mirror func(line string)

	// OnTick, if set, receives a plain-data copy of the world state once
	// per loop iteration. It exists so internal/api's dashboard can read
	// game state from another goroutine without touching e.world directly
	// — the engine stays single-threaded (§5); only copied snapshots cross
	// goroutine boundaries.
	OnTick func(StateSnapshot)
}

// PlayerSnapshot is one player's read-only state, part of StateSnapshot.
type PlayerSnapshot struct {
	ID    int
	Team  string
	X, Y  int
	Level int
	State string
}

// TileSnapshot is one tile's resource counts, part of StateSnapshot.
type TileSnapshot struct {
	X, Y      int
	Resources []int
}

// StateSnapshot is an immutable copy of the world taken at the end of a
// tick, safe to read concurrently from internal/api's dashboard handlers.
type StateSnapshot struct {
	SessionID     string
	Width, Height int
	Frequency     int
	Teams         []TeamResult
	Players       []PlayerSnapshot
	Tiles         []TileSnapshot
	Winner        string
	TakenAt       time.Time
}

// SessionID returns this run's identifier.
func (e *Engine) SessionID() string { return e.sessionID.String() }

// New builds an Engine around an already-listening TCP socket.
func New(cfg Config) (*Engine, error) {
	fd, err := fdOf(cfg.Listener)
	if err != nil {
		return nil, fmt.Errorf("engine: extracting listener fd: %w", err)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	w := world.New(cfg.Width, cfg.Height, cfg.TeamNames, cfg.SlotsPerTeam, rng)
	sp := spawner.New(w.Grid, rng)
	sp.Populate()

	return &Engine{
		Frequency:  cfg.Frequency,
		sessionID:  uuid.New(),
		world:      w,
		spawner:    sp,
		clock:      clock.New(cfg.Frequency),
		registry:   buildRegistry(rng),
		rng:        rng,
		listener:   cfg.Listener,
		listenerFD: fd,
		poller:     netio.NewPoller(),
		conns:      make(map[int]*connection),
		playerConn: make(map[int]int),
		nextConnID: 1,
	}, nil
}

// fdOf extracts the raw file descriptor behind a net.Listener or net.Conn,
// for registration with the poll(2)-based Poller.
func fdOf(c syscall.Conn) (int, error) {
	raw, err := c.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd int
	ctrlErr := raw.Control(func(f uintptr) { fd = int(f) })
	if ctrlErr != nil {
		return 0, ctrlErr
	}
	return fd, nil
}

// Run drives the scheduler loop until ctx is canceled or the win condition
// fires (§4.6 step 8). It returns the finished game's summary.
func (e *Engine) Run(ctx context.Context) GameSummary {
	e.startedAt = e.clock.Now()

	for {
		select {
		case <-ctx.Done():
			return e.summary()
		default:
		}

		e.pendingGUIQueries = e.pendingGUIQueries[:0]

		e.poller.Reset()
		e.poller.Watch(e.listenerFD, listenerFDID)
		for id, c := range e.conns {
			if len(c.pending) > 0 {
				e.poller.WatchWrite(c.fd, id)
			} else {
				e.poller.Watch(c.fd, id)
			}
		}

		readable, writable, err := e.poller.Wait()
		if err != nil {
			log.Printf("engine: poll error: %v", err)
			continue
		}

		for _, id := range writable {
			if c, ok := e.conns[id]; ok {
				c.flush()
			}
		}

		for _, id := range readable {
			if id == listenerFDID {
				e.acceptNew()
				continue
			}
			e.drainConnection(id)
		}

		e.runCommands()
		e.houseKeeping()
		e.reap()
		e.answerGUIQueries()

		if e.OnTick != nil {
			e.OnTick(e.buildSnapshot())
		}

		if e.checkWinCondition() {
			return e.summary()
		}
	}
}

// buildSnapshot copies the world's current state into plain data (§ DOMAIN
// STACK — internal/api's dashboard reads StateSnapshot values, never the
// world itself, from a different goroutine).
func (e *Engine) buildSnapshot() StateSnapshot {
	players := e.world.AllPlayers()
	out := make([]PlayerSnapshot, 0, len(players))
	for _, p := range players {
		if p.GetState() == world.Unused {
			continue
		}
		pos := p.GetPosition()
		out = append(out, PlayerSnapshot{
			ID:    p.ID,
			Team:  p.Team,
			X:     pos.X,
			Y:     pos.Y,
			Level: p.GetLevel(),
			State: p.GetState().String(),
		})
	}

	tiles := e.world.Grid.AllTiles()
	tileOut := make([]TileSnapshot, 0, len(tiles))
	for _, t := range tiles {
		counts := t.Inventory.Snapshot()
		res := make([]int, len(counts))
		copy(res, counts[:])
		tileOut = append(tileOut, TileSnapshot{X: t.Pos.X, Y: t.Pos.Y, Resources: res})
	}

	teamsSeen := map[string]*TeamResult{}
	var order []string
	for _, name := range e.world.TeamNames() {
		teamsSeen[name] = &TeamResult{Name: name}
		order = append(order, name)
	}
	for _, p := range players {
		if p.GetState() == world.Alive {
			if tr, ok := teamsSeen[p.Team]; ok {
				tr.PlayersAlive++
			}
		}
	}
	teams := make([]TeamResult, 0, len(order))
	for _, name := range order {
		teams = append(teams, *teamsSeen[name])
	}

	return StateSnapshot{
		SessionID: e.sessionID.String(),
		Width:     e.world.Grid.Width(),
		Height:    e.world.Grid.Height(),
		Frequency: e.Frequency,
		Teams:     teams,
		Players:   out,
		Tiles:     tileOut,
		Winner:    e.winner,
		TakenAt:   e.clock.Now(),
	}
}

// acceptNew accepts one connection queued on the listener and sends it the
// `WELCOME\n` banner (§4.6 step 2, §4.9). It is only called when poll
// reported the listener readable, so Accept does not wait; any further
// queued connections keep the listener readable and are accepted on the
// following loop iterations.
func (e *Engine) acceptNew() {
	conn, err := e.listener.Accept()
	if err != nil {
		return
	}
	fd, err := fdOf(conn)
	if err != nil {
		conn.Close()
		return
	}
	id := e.nextConnID
	e.nextConnID++
	c := newConnection(id, conn, fd)
	e.conns[id] = c
	c.write("WELCOME\n")
	c.state = WaitingRole
}

// drainConnection reads whatever is available on one ready socket, feeds
// its framer, and dispatches every complete line (§4.6 step 3).
func (e *Engine) drainConnection(id int) {
	c, ok := e.conns[id]
	if !ok {
		return
	}
	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if n > 0 {
		if feedErr := c.framer.Feed(buf[:n]); feedErr != nil {
			e.dropConnection(id, "receive buffer overflow")
			return
		}
	}
	if err != nil {
		e.dropConnection(id, "disconnect")
		return
	}

	for {
		line, ok := c.framer.NextLine()
		if !ok {
			break
		}
		e.dispatchLine(c, line)
	}
}

// dispatchLine routes one complete line according to the connection's
// lifecycle state (§4.9).
func (e *Engine) dispatchLine(c *connection, line string) {
	switch c.state {
	case BannerSent, WaitingRole:
		e.handleHandshake(c, line)
	case ActiveAI:
		e.handleAILine(c, line)
	case ActiveGUI:
		e.pendingGUIQueries = append(e.pendingGUIQueries, line)
	}
}

// handleHandshake resolves the first inbound line into a role: GUI or a
// team name (§4.9).
func (e *Engine) handleHandshake(c *connection, line string) {
	if line == "GRAPHIC" {
		if e.guiConnID != 0 {
			c.write("ko\n")
			e.dropConnection(c.id, "gui slot already taken")
			return
		}
		e.guiConnID = c.id
		c.state = ActiveGUI
		for _, l := range guiSyncLines(e.world, e.Frequency) {
			c.write(l)
		}
		return
	}

	p := e.world.JoinTeam(line, e.clock.Now())
	if p == nil {
		c.write("ko\n")
		e.dropConnection(c.id, "team join failed")
		return
	}
	c.state = ActiveAI
	c.playerID = p.ID
	e.playerConn[p.ID] = c.id
	c.write(fmt.Sprintf("%d\n%d %d\n", e.world.Team(line).FreeSlotCount(), e.world.Grid.Width(), e.world.Grid.Height()))
	e.emitGUI(pnwLine(p))
}

// handleAILine parses and enqueues one AI command line (§4.4, §4.6 step 3).
func (e *Engine) handleAILine(c *connection, line string) {
	verb, arg := splitCommand(line)
	if verb == "" {
		return
	}
	duration, known := catalog.Durations[verb]
	if !known {
		c.write("ko\n")
		return
	}
	c.queue.Enqueue(queue.Entry{Verb: string(verb), Argument: arg, DurationTU: duration})
}

// runCommands executes the head-of-queue command for every eligible
// player, in stable player-id order (§4.6 step 4, §5).
func (e *Engine) runCommands() {
	players := e.world.AllPlayers()
	sortByID(players)

	for _, p := range players {
		if p.GetState() != world.Alive {
			continue
		}
		connID, hasConn := e.playerConn[p.ID]
		if !hasConn {
			continue
		}
		c := e.conns[connID]

		entry, ok := c.queue.Peek()
		if !ok {
			continue
		}

		// An incantation-locked player cannot start a new command, but a
		// command it already had in flight (notably its own Incantation)
		// must still be allowed to reach completion — lock freezes
		// un-started queue progress, not an already-running timer (§4.6
		// step 4, §4.7).
		if !p.IsCommandInFlight() {
			if p.IsLocked() {
				continue
			}
			p.StartCommand(e.clock.Now())
			e.startCommand(c, p, entry)
			continue
		}

		if !e.clock.Elapsed(p.CommandStartedAt(), entry.DurationTU) {
			continue
		}

		verb := catalog.Verb(entry.Verb)
		handler, ok := e.registry.Get(verb)
		if !ok {
			c.queue.Dequeue()
			p.ClearCommand()
			continue
		}
		result := handler.Process(e.contextFor(c, p, entry.Argument))
		c.write(result.Reply)
		c.queue.Dequeue()
		p.ClearCommand()
	}
}

// startCommand fires a handler's start-of-wait behavior. Only Incantation
// implements Starter; every other verb simply begins its wait (§4.6 step 4).
func (e *Engine) startCommand(c *connection, p *world.Player, entry queue.Entry) {
	verb := catalog.Verb(entry.Verb)
	handler, ok := e.registry.Get(verb)
	if !ok {
		c.queue.Dequeue()
		p.ClearCommand()
		return
	}
	starter, ok := handler.(catalog.Starter)
	if !ok {
		return
	}
	done, result := starter.Start(e.contextFor(c, p, entry.Argument))
	if done {
		c.write(result.Reply)
		c.queue.Dequeue()
		p.ClearCommand()
	}
}

func (e *Engine) contextFor(c *connection, p *world.Player, arg string) *catalog.Context {
	return &catalog.Context{
		World:    e.world,
		Player:   p,
		Argument: arg,
		Now:      e.clock.Now(),
		Emit:     e.emitGUI,
		Tell:     e.tell,
	}
}

// emitGUI delivers one line to the bound GUI connection, a no-op when none
// is bound (§9), mirroring it to Mirror when set (§ DOMAIN STACK).
func (e *Engine) emitGUI(line string) {
	if e.guiConnID == 0 {
		return
	}
	if c, ok := e.conns[e.guiConnID]; ok {
		c.write(line)
	}
	if e.Mirror != nil {
		e.Mirror(line)
	}
}

// tell delivers a line to another AI client by player id, a no-op if that
// player has no live connection (§4.7 Broadcast/Incantation).
func (e *Engine) tell(playerID int, line string) {
	connID, ok := e.playerConn[playerID]
	if !ok {
		return
	}
	if c, ok := e.conns[connID]; ok {
		c.write(line)
	}
}

// houseKeeping runs the food-tick and resource-regeneration passes
// (§4.6 step 5, §4.3).
func (e *Engine) houseKeeping() {
	now := e.clock.Now()
	for _, p := range e.world.AllPlayers() {
		if p.GetState() != world.Alive {
			continue
		}
		if !e.clock.Elapsed(p.GetLastFoodTick(), foodTickTimeUnits) {
			continue
		}
		p.SetLastFoodTick(now)
		if !p.AddInventory(world.Food, -1) {
			e.world.KillPlayer(p)
		}
	}

	elapsedTimeUnits := float64(e.Frequency) * now.Sub(e.startedAt).Seconds()
	e.spawner.MaybeRegen(elapsedTimeUnits)
}

// reap tears down every DEAD player: socket notice, GUI event, slot
// removal (§4.6 step 6).
func (e *Engine) reap() {
	for _, p := range e.world.AllPlayers() {
		if p.GetState() != world.Dead {
			continue
		}
		if connID, ok := e.playerConn[p.ID]; ok {
			if c, ok := e.conns[connID]; ok {
				c.write("dead\n")
			}
			e.dropConnection(connID, "reaped")
		}
		e.emitGUI(fmt.Sprintf("pdi #%d\n", p.ID))
	}
	e.world.ReapDead()
}

// answerGUIQueries processes every sync query line the bound GUI sent this
// tick, in arrival order (§4.6 step 7, §4.8).
func (e *Engine) answerGUIQueries() {
	if e.guiConnID == 0 || len(e.pendingGUIQueries) == 0 {
		return
	}
	c, ok := e.conns[e.guiConnID]
	if !ok {
		return
	}
	for _, line := range e.pendingGUIQueries {
		if reply := handleGUIQuery(e.world, e.Frequency, line); reply != "" {
			c.write(reply)
		}
	}
}

// checkWinCondition reports whether any ALIVE player reached MaxLevel
// (§4.6 step 8), recording the winning team.
func (e *Engine) checkWinCondition() bool {
	for _, p := range e.world.AllPlayers() {
		if p.GetState() == world.Alive && p.GetLevel() >= world.MaxLevel {
			e.winner = p.Team
			return true
		}
	}
	return false
}

// dropConnection closes and forgets connection id. A still-ALIVE player's
// slot is freed to UNUSED and a `pdi` emitted (§4.9); a DEAD player's slot
// is left untouched — reap() already emitted its own `pdi` and removes the
// slot entirely via World.ReapDead, which a Reset here would pre-empt.
func (e *Engine) dropConnection(id int, reason string) {
	c, ok := e.conns[id]
	if !ok {
		return
	}
	delete(e.conns, id)
	c.conn.Close()

	if id == e.guiConnID {
		e.guiConnID = 0
		return
	}
	if c.playerID == 0 {
		return
	}
	delete(e.playerConn, c.playerID)

	p := e.world.Player(c.playerID)
	if p == nil {
		return
	}
	if p.GetState() == world.Alive {
		p.Reset()
		e.emitGUI(fmt.Sprintf("pdi #%d\n", c.playerID))
	}
	log.Printf("engine: connection %d dropped (%s)", id, reason)
}

// summary snapshots the finished game's standings for OnGameOver.
func (e *Engine) summary() GameSummary {
	teamsSeen := map[string]*TeamResult{}
	var order []string
	for _, name := range e.world.TeamNames() {
		teamsSeen[name] = &TeamResult{Name: name}
		order = append(order, name)
	}
	for _, p := range e.world.AllPlayers() {
		if p.GetState() == world.Alive {
			if tr, ok := teamsSeen[p.Team]; ok {
				tr.PlayersAlive++
			}
		}
	}
	out := make([]TeamResult, 0, len(order))
	for _, name := range order {
		out = append(out, *teamsSeen[name])
	}
	s := GameSummary{
		Winner:   e.winner,
		Teams:    out,
		Duration: e.clock.Now().Sub(e.startedAt),
	}
	if e.OnGameOver != nil {
		e.OnGameOver(s)
	}
	return s
}

// sortByID orders players by ascending id for deterministic per-tick
// visiting order (§4.6 "Ordering guarantees").
func sortByID(players []*world.Player) {
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].ID < players[j-1].ID; j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
}
