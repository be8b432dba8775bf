package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Player is one joined participant of a Room.
type Player struct {
	ID       string
	Name     string
	Reaction string

	client *Client
}

// round holds the outcome of one start/nextGame, replaced wholesale by the
// next one.
type round struct {
	category    string
	word        string
	imposterIDs map[string]bool
}

// Room owns the authoritative state for one game session. Every mutation
// runs start-to-finish under mu, so state transitions within a room are
// serialized in message-arrival order while rooms stay independent.
type Room struct {
	id  string
	reg *Registry

	mu             sync.Mutex
	players        []*Player // join order; head is next in admin succession
	adminID        string
	imposterCount  int
	randomImposter bool
	showCategories bool
	roundActive    bool
	password       string
	passwordSet    bool
	current        *round
	lastActive     time.Time
	closed         bool
}

// Registry is the process-wide room map. Constructed once at startup and
// passed by reference; there is no ambient global state.
type Registry struct {
	cfg   *Config
	rng   RNG
	words *WordBank

	mu    sync.Mutex
	rooms map[string]*Room
}

func newRegistry(cfg *Config, rng RNG, words *WordBank) *Registry {
	reg := &Registry{
		cfg:   cfg,
		rng:   rng,
		words: words,
		rooms: make(map[string]*Room),
	}
	if cfg.sessionTimeout > 0 {
		go reg.reaperLoop()
	}
	return reg
}

func newRoom(reg *Registry, id string) *Room {
	return &Room{
		id:             id,
		reg:            reg,
		imposterCount:  1,
		randomImposter: false,
		showCategories: true,
		roundActive:    false,
		lastActive:     time.Now(),
	}
}

func (reg *Registry) getOrCreate(roomID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, ok := reg.rooms[roomID]; ok {
		return room
	}

	room := newRoom(reg, roomID)
	reg.rooms[roomID] = room
	return room
}

func (reg *Registry) lookup(roomID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return reg.rooms[roomID]
}

// remove deletes the room from the map, but only if the map still holds this
// exact instance; a replacement created under the same ID is left alone.
func (reg *Registry) remove(room *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.rooms[room.id] == room {
		delete(reg.rooms, room.id)
	}
}

func (reg *Registry) count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.rooms)
}

// reaperLoop periodically force-disconnects rooms that have been idle longer
// than the session timeout. The disconnects drain the room through the
// normal removal path.
func (reg *Registry) reaperLoop() {
	ticker := time.NewTicker(reg.cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-reg.cfg.sessionTimeout)

		// Snapshot first: room locks are never taken under the registry
		// lock, since removal acquires them the other way around.
		reg.mu.Lock()
		rooms := make([]*Room, 0, len(reg.rooms))
		for _, room := range reg.rooms {
			rooms = append(rooms, room)
		}
		reg.mu.Unlock()

		for _, room := range rooms {
			room.mu.Lock()
			stale := room.lastActive.Before(cutoff)
			room.mu.Unlock()

			if stale {
				logf(reg.cfg, "ROOMS: Reaping idle room %q", room.id)
				room.closeAll()
			}
		}
	}
}

// join processes a join against this room. Returns false if the room was
// emptied and removed between lookup and lock, in which case the caller
// should resolve a fresh room and retry.
func (r *Room) join(c *Client, cmd joinCommand) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	r.lastActive = time.Now()

	if r.passwordSet && r.password != cmd.Password {
		c.trySend(r.reg.cfg, newError("Incorrect password"))
		// A failed first join would otherwise strand an empty room in the
		// registry.
		if len(r.players) == 0 {
			r.closed = true
			r.reg.remove(r)
		}
		return true
	}

	if !r.passwordSet && cmd.Password != "" {
		r.password = cmd.Password
		r.passwordSet = true
	}

	player := &Player{
		ID:     uuid.NewString(),
		Name:   cmd.PlayerName,
		client: c,
	}
	r.players = append(r.players, player)

	if len(r.players) == 1 {
		r.adminID = player.ID
	}
	c.attach(r, player.ID)

	isAdmin := r.adminID == player.ID
	joined := joinedMessage{
		Type:           "joined",
		IsAdmin:        isAdmin,
		PlayerID:       player.ID,
		ShowCategories: r.showCategories,
	}
	if isAdmin {
		gameStarted := r.roundActive
		imposterCount := r.imposterCount
		randomImposter := r.randomImposter
		joined.GameStarted = &gameStarted
		joined.ImposterCount = &imposterCount
		joined.RandomImposter = &randomImposter
	}
	c.trySend(r.reg.cfg, joined)

	logf(r.reg.cfg, "ROOMS: Player %q joined %q", player.Name, r.id)

	r.broadcastRosterLocked()
	return true
}

// start runs both "start" and "nextGame": they are the same transition, the
// second merely replaces the previous round's data in place.
func (r *Room) start(c *Client, cmd startCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin := r.playerByClientLocked(c)
	if admin == nil || admin.ID != r.adminID {
		// Stale UI state, not an attack; no error is surfaced.
		return
	}
	r.lastActive = time.Now()

	if cmd.ImposterCount < 1 {
		admin.client.trySend(r.reg.cfg, newError("Invalid imposter count"))
		return
	}

	effective := cmd.ImposterCount
	if cmd.RandomImposter {
		effective = r.reg.rng.IntN(cmd.ImposterCount) + 1
	}

	if effective >= len(r.players) {
		admin.client.trySend(r.reg.cfg, newError("Too many imposters for current player count"))
		return
	}

	category, word := r.reg.words.pick(r.reg.rng)
	imposterIDs := r.pickImpostersLocked(effective)

	r.imposterCount = cmd.ImposterCount
	r.randomImposter = cmd.RandomImposter
	r.showCategories = cmd.ShowCategories
	r.roundActive = true
	r.current = &round{
		category:    category,
		word:        word,
		imposterIDs: imposterIDs,
	}

	logf(r.reg.cfg, "ROOMS: Round started in %q (%d imposters among %d players)",
		r.id, effective, len(r.players))

	for _, p := range r.players {
		p.client.trySend(r.reg.cfg, r.gameStartFor(p))
	}
}

// pickImpostersLocked samples n distinct players uniformly at random via a
// partial Fisher-Yates shuffle, so selection terminates in bounded time even
// when n approaches the player count.
func (r *Room) pickImpostersLocked(n int) map[string]bool {
	idx := make([]int, len(r.players))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + r.reg.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	imposters := make(map[string]bool, n)
	for _, i := range idx[:n] {
		imposters[r.players[i].ID] = true
	}
	return imposters
}

// gameStartFor tailors the round-start message to one player.
func (r *Room) gameStartFor(p *Player) gameStartMessage {
	isImposter := r.current.imposterIDs[p.ID]

	msg := gameStartMessage{
		Type:           "gameStart",
		ShowCategories: r.showCategories,
		IsImposter:     isImposter,
	}

	if r.showCategories {
		category := r.current.category
		msg.Category = &category
	}

	if isImposter {
		// Imposters know each other so they can coordinate; each gets the
		// names of the others, not their own.
		for _, other := range r.players {
			if r.current.imposterIDs[other.ID] && other.ID != p.ID {
				msg.Imposters = append(msg.Imposters, other.Name)
			}
		}
	} else {
		word := r.current.word
		msg.Word = &word
	}

	return msg
}

func (r *Room) updateImposterCount(c *Client, cmd updateCountCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin := r.playerByClientLocked(c)
	if admin == nil || admin.ID != r.adminID {
		return
	}
	r.lastActive = time.Now()

	if cmd.ImposterCount < 1 {
		admin.client.trySend(r.reg.cfg, newError("Invalid imposter count"))
		return
	}
	if cmd.ImposterCount >= len(r.players) {
		admin.client.trySend(r.reg.cfg, newError("Too many imposters for current player count"))
		return
	}

	r.imposterCount = cmd.ImposterCount

	update := imposterCountUpdatedMessage{
		Type:  "imposterCountUpdated",
		Count: cmd.ImposterCount,
	}
	for _, p := range r.players {
		p.client.trySend(r.reg.cfg, update)
	}
}

func (r *Room) kick(c *Client, cmd kickCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin := r.playerByClientLocked(c)
	if admin == nil || admin.ID != r.adminID {
		return
	}
	if cmd.PlayerID == r.adminID {
		// The admin may not kick themselves.
		return
	}
	r.lastActive = time.Now()

	var target *Player
	dst := r.players[:0]
	for _, p := range r.players {
		if p.ID == cmd.PlayerID {
			target = p
			continue
		}
		dst = append(dst, p)
	}
	r.players = dst

	if target == nil {
		return
	}

	logf(r.reg.cfg, "ROOMS: Player %q kicked from %q", target.Name, r.id)

	target.client.trySend(r.reg.cfg, kickedMessage{Type: "kicked"})
	target.client.detach()
	target.client.shutdown()

	r.broadcastRosterLocked()
}

func (r *Room) emote(c *Client, cmd emoteCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player := r.playerByClientLocked(c)
	if player == nil {
		return
	}
	r.lastActive = time.Now()

	// Empty payload clears the stored reaction.
	player.Reaction = cmd.EmoteName

	event := emoteEventMessage{
		Type:       "emote",
		PlayerID:   player.ID,
		PlayerName: player.Name,
		EmoteName:  cmd.EmoteName,
	}
	for _, p := range r.players {
		p.client.trySend(r.reg.cfg, event)
	}
}

// adminClaim lets a connection assert admin authority, used by the UI to
// accept admin state after failover. Relinquishing is not a thing: a
// non-empty room always has exactly one admin.
func (r *Room) adminClaim(c *Client, cmd adminClaimCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player := r.playerByClientLocked(c)
	if player == nil || !cmd.IsAdmin {
		return
	}
	r.lastActive = time.Now()

	r.adminID = player.ID
	r.broadcastRosterLocked()
}

// disconnect removes the player owning this connection. If they were admin,
// authority transfers to the earliest remaining joiner, who is notified
// directly before the roster goes out.
func (r *Room) disconnect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var gone *Player
	dst := r.players[:0]
	for _, p := range r.players {
		if p.client == c {
			gone = p
			continue
		}
		dst = append(dst, p)
	}
	r.players = dst

	if gone == nil {
		return
	}
	c.detach()
	r.lastActive = time.Now()

	logf(r.reg.cfg, "ROOMS: Player %q left %q", gone.Name, r.id)

	if len(r.players) == 0 {
		r.closed = true
		r.reg.remove(r)
		logf(r.reg.cfg, "ROOMS: Removed empty room %q", r.id)
		return
	}

	if gone.ID == r.adminID {
		successor := r.players[0]
		r.adminID = successor.ID
		successor.client.trySend(r.reg.cfg, adminUpdateMessage{
			Type:           "adminUpdate",
			IsAdmin:        true,
			ShowCategories: r.showCategories,
			GameStarted:    r.roundActive,
			ImposterCount:  r.imposterCount,
			RandomImposter: r.randomImposter,
		})
	}

	r.broadcastRosterLocked()
}

// closeAll force-disconnects every player (used by the reaper). Cleanup
// happens through the read pumps' normal disconnect path.
func (r *Room) closeAll() {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.players))
	for _, p := range r.players {
		clients = append(clients, p.client)
	}
	r.mu.Unlock()

	for _, c := range clients {
		c.shutdown()
	}
}

func (r *Room) playerByClientLocked(c *Client) *Player {
	for _, p := range r.players {
		if p.client == c {
			return p
		}
	}
	return nil
}

func (r *Room) broadcastRosterLocked() {
	roster := playerCountMessage{
		Type:    "playerCount",
		Count:   len(r.players),
		Players: make([]rosterEntry, 0, len(r.players)),
	}
	for _, p := range r.players {
		roster.Players = append(roster.Players, rosterEntry{
			Name:     p.Name,
			ID:       p.ID,
			IsAdmin:  p.ID == r.adminID,
			Reaction: p.Reaction,
		})
	}

	for _, p := range r.players {
		p.client.trySend(r.reg.cfg, roster)
	}
}
