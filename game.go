package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	TickRate       = 30 // simulation ticks per second
	BroadcastRate  = 15 // state broadcasts per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate

	maxPlayersPerWorld = 16
	particlePoolSize   = 128
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game hosts one world session: it owns the World (sole writer), the
// connected players and the tick loop. All engine calls happen under
// mu from the loop goroutine, so the World itself needs no locking.
type Game struct {
	mu      sync.RWMutex
	world   *World
	players map[string]*Player
	clients map[string]Broadcaster
	rng     *worldRand

	particles *ParticlePool
	tick      uint64
	running   bool
	stop      chan struct{}

	db        *DB // nil in tests and when running without persistence
	analytics *Analytics
	sessionID string

	// Scratch buffers for the per-tick discovery batch, sized at the
	// player cap so the loop stays allocation-free.
	probeBuf   []float32
	resultBuf  []int32
	probeOwner []*Player
}

// NewGame generates a fresh world from the preset and seed
func NewGame(preset WorldPreset, seed uint32, db *DB, analytics *Analytics) *Game {
	cfg := DefaultWorldConfig(preset)
	w := NewWorld(cfg)
	Generate(w, seed)

	g := &Game{
		world:      w,
		players:    make(map[string]*Player),
		clients:    make(map[string]Broadcaster),
		rng:        newWorldRand(seed ^ 0x9e3779b9),
		particles:  NewParticlePool(particlePoolSize, 0, 12, 0),
		stop:       make(chan struct{}),
		db:         db,
		analytics:  analytics,
		probeBuf:   make([]float32, maxPlayersPerWorld*3),
		resultBuf:  make([]int32, maxPlayersPerWorld),
		probeOwner: make([]*Player, maxPlayersPerWorld),
	}
	return g
}

// Run starts the tick loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the tick loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// AddPlayer adds a new player to the world. Returns nil when the
// world is full.
func (g *Game) AddPlayer(name string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	body := g.world.AllocBody()
	if body < 0 {
		return nil
	}
	id := GenerateID(4)
	player := NewPlayer(id, name, g.world, body, g.rng)
	g.players[id] = player
	return player
}

// RemovePlayer removes a player and frees its body slot
func (g *Game) RemovePlayer(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.players[id]; ok {
		g.world.FreeBody(p.Body)
		delete(g.players, id)
	}
	delete(g.clients, id)
}

// HasPlayer reports whether id is in this world
func (g *Game) HasPlayer(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.players[id]
	return ok
}

// SetClient associates a broadcaster with a player
func (g *Game) SetClient(playerID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[playerID] = client
}

// HandleInput processes input from a player
func (g *Game) HandleInput(playerID string, input ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.players[playerID]; ok {
		p.ApplyInput(input)
	}
}

// PlayerCount returns the number of players
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// Preset returns the world preset of this session
func (g *Game) Preset() WorldPreset {
	return g.world.cfg.Preset
}

// WorldSnapshot builds the static layout message sent once on join
func (g *Game) WorldSnapshot() WorldInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()

	info := WorldInfo{Preset: int(g.world.cfg.Preset)}
	for i := int32(0); i < int32(g.world.ObjectCount()); i++ {
		obj := g.world.Object(i)
		info.Objects = append(info.Objects, ObjectInfo{
			Type:  int(obj[slotType]),
			X:     round2(float64(obj[slotX])),
			Y:     round2(float64(obj[slotY])),
			Z:     round2(float64(obj[slotZ])),
			P1:    round2(float64(obj[slotP1])),
			P2:    round2(float64(obj[slotP2])),
			P3:    round2(float64(obj[slotP3])),
			Flags: uint32(obj[slotFlags]),
		})
	}
	for i := int32(0); i < int32(g.world.discovery.Count()); i++ {
		item := g.world.discovery.Object(i)
		info.Items = append(info.Items, ItemInfo{
			Index:      i,
			TypeID:     item.TypeID,
			X:          round2(float64(item.X)),
			Y:          round2(float64(item.Y)),
			Z:          round2(float64(item.Z)),
			Discovered: item.Discovered,
		})
	}
	return info
}

// update runs one simulation tick
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	dt := 1.0 / float64(TickRate)
	g.tick++

	// Kinematics then narrow phase, per player
	maxKick := 0.0
	probes := 0
	for _, p := range g.players {
		p.Update(dt, g.world)
		g.world.ResolvePlayerCollisions(p.Body, float32(p.Kick))
		if p.Kick > maxKick {
			maxKick = p.Kick
		}

		b := g.world.Body(p.Body)
		g.probeBuf[probes*3] = b[bodyX]
		g.probeBuf[probes*3+1] = b[bodyY]
		g.probeBuf[probes*3+2] = b[bodyZ]
		g.probeOwner[probes] = p
		probes++
	}

	// One discovery probe per player position
	if probes > 0 {
		g.world.discovery.BatchCheck(g.probeBuf, probes, g.resultBuf, g.tick)
		for i := 0; i < probes; i++ {
			if g.resultBuf[i] != 0 {
				g.onDiscovery(g.probeOwner[i], g.resultBuf[i])
			}
		}
	}

	// The loudest player's track drives the shared sparkles
	g.particles.Update(float32(dt), float32(maxKick))

	if g.tick%BroadcastEvery == 0 {
		g.broadcastState()
	}
}

// onDiscovery credits a find: session counters, persistent stats,
// analytics, achievements, and the broadcast. Called under mu.
func (g *Game) onDiscovery(p *Player, typeID int32) {
	def := ItemCatalogMap[typeID]
	p.Finds++
	p.SessionXP += def.XP

	b := g.world.Body(p.Body)
	g.broadcastMsg(Envelope{T: MsgDiscovery, Data: DiscoveryMsg{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		TypeID:     typeID,
		ItemName:   def.Name,
		X:          round2(float64(b[bodyX])),
		Y:          round2(float64(b[bodyY])),
		Z:          round2(float64(b[bodyZ])),
		XP:         def.XP,
	}})

	if g.db == nil || p.AuthPlayerID == 0 {
		return
	}
	newXP, newLevel, leveled, err := g.db.RecordDiscovery(p.AuthPlayerID, typeID, def.XP)
	if err != nil {
		log.Printf("record discovery: %v", err)
		return
	}
	if g.analytics != nil {
		g.analytics.Track(EvtDiscovery, p.AuthPlayerID, g.sessionID,
			fmt.Sprintf(`{"type_id":%d,"xp":%d}`, typeID, def.XP))
		if leveled {
			g.analytics.Track(EvtLevelUp, p.AuthPlayerID, g.sessionID,
				fmt.Sprintf(`{"level":%d,"xp":%d}`, newLevel, newXP))
		}
	}

	for _, def := range CheckAchievements(g.db, p.AuthPlayerID, p.Finds) {
		if client, ok := g.clients[p.ID]; ok {
			client.SendJSON(Envelope{T: MsgAchievement, Data: AchievementMsg{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
			}})
		}
		if g.analytics != nil {
			g.analytics.Track(EvtAchievement, p.AuthPlayerID, g.sessionID,
				fmt.Sprintf(`{"id":%q}`, def.ID))
		}
	}
}

// broadcastState sends the current snapshot to all clients as a
// msgpack binary message
func (g *Game) broadcastState() {
	state := WorldState{
		Players:   make([]PlayerState, 0, len(g.players)),
		Particles: g.particles.Positions(),
		Tick:      g.tick,
	}
	for _, p := range g.players {
		state.Players = append(state.Players, p.ToState(g.world))
	}

	data, err := marshalState(state)
	if err != nil {
		log.Printf("state marshal: %v", err)
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
}

// broadcastMsg sends a JSON message to all clients in the session
func (g *Game) broadcastMsg(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}

// jsonMeta is a tiny helper for analytics metadata strings
func jsonMeta(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
