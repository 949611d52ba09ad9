package main

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgLeave    = "leave"
	MsgInput    = "input"
	MsgCreate   = "create" // create world session
	MsgList     = "list"   // list world sessions
	MsgCheck    = "check"  // check if a session exists
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth" // token re-auth
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgState       = "state" // msgpack binary, not JSON
	MsgWelcome     = "welcome"
	MsgWorld       = "world" // static world layout on join
	MsgDiscovery   = "discovery"
	MsgAchievement = "achievement"
	MsgSessions    = "sessions"
	MsgJoined      = "joined"
	MsgCreated     = "created"
	MsgChecked     = "checked"
	MsgError       = "error"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile_data"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids
// double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is sent by the client every animation frame (~20Hz).
// Kick is the low-band audio amplitude the client's analyser extracts
// from the playing track; it drives trampoline bounce strength and the
// particle surge.
type ClientInput struct {
	MoveX float64 `json:"mx"` // desired move direction, unit-clamped
	MoveZ float64 `json:"mz"`
	Jump  bool    `json:"j"`
	Kick  float64 `json:"k"` // [0,1]
}

// JoinMsg is sent when a player wants to join a world session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}

// CreateMsg is sent when a player wants to create a world session
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
	Preset      int    `json:"preset"`
}

// PlayerState is broadcast per player in each state snapshot
type PlayerState struct {
	ID       string  `msgpack:"id" json:"id"`
	Name     string  `msgpack:"n" json:"n"`
	X        float64 `msgpack:"x" json:"x"`
	Y        float64 `msgpack:"y" json:"y"`
	Z        float64 `msgpack:"z" json:"z"`
	VX       float64 `msgpack:"vx" json:"vx"`
	VY       float64 `msgpack:"vy" json:"vy"`
	VZ       float64 `msgpack:"vz" json:"vz"`
	Grounded bool    `msgpack:"g" json:"g"`
	Finds    int     `msgpack:"f" json:"f"`
}

// WorldState is the per-tick snapshot, msgpack-encoded and sent as a
// binary WebSocket message. Particles is the flat x,y,z,life array of
// the session's sparkle pool.
type WorldState struct {
	Players   []PlayerState `msgpack:"p"`
	Particles []float32     `msgpack:"pt"`
	Tick      uint64        `msgpack:"tick"`
}

// ObjectInfo describes one static collision object in the world layout
type ObjectInfo struct {
	Type  int     `json:"t"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	P1    float64 `json:"p1"`
	P2    float64 `json:"p2"`
	P3    float64 `json:"p3"`
	Flags uint32  `json:"fl,omitempty"`
}

// ItemInfo describes one discoverable item in the world layout
type ItemInfo struct {
	Index      int32   `json:"i"`
	TypeID     int32   `json:"tid"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Discovered bool    `json:"d,omitempty"`
}

// WorldInfo is sent once on join: the full static layout
type WorldInfo struct {
	Preset  int          `json:"preset"`
	Objects []ObjectInfo `json:"objects"`
	Items   []ItemInfo   `json:"items"`
}

// DiscoveryMsg is broadcast when a player finds an item
type DiscoveryMsg struct {
	PlayerID   string  `json:"pid"`
	PlayerName string  `json:"pn"`
	TypeID     int32   `json:"tid"`
	ItemName   string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	XP         int     `json:"xp"`
}

// AchievementMsg notifies a player of a newly unlocked achievement
type AchievementMsg struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// WelcomeMsg is sent to a player when they join a world
type WelcomeMsg struct {
	ID string `json:"id"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Preset  int    `json:"preset"`
	Players int    `json:"players"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// CheckMsg is sent by the client to check if a session exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to a session check
type CheckedMsg struct {
	SID     string `json:"sid"`
	Exists  bool   `json:"exists"`
	Name    string `json:"name,omitempty"`
	Players int    `json:"players,omitempty"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates with credentials
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg authenticates with a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"player_id"`
}

// ProfileDataMsg carries persistent exploration stats
type ProfileDataMsg struct {
	Username string  `json:"username"`
	Level    int     `json:"level"`
	XP       int     `json:"xp"`
	Finds    int     `json:"finds"`
	Worlds   int     `json:"worlds"`
	Playtime float64 `json:"playtime"`
}

// marshalState encodes a world snapshot for the binary broadcast path
func marshalState(state WorldState) ([]byte, error) {
	return msgpack.Marshal(state)
}
