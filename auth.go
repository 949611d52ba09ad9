package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenLifetime  = 7 * 24 * time.Hour
	bcryptCost     = 12
	minPasswordLen = 6
	maxPasswordLen = 64 // bcrypt ignores input past 72 bytes

	// Usernames double as in-world display names, so the same length
	// cap applies.
	minUsernameLen = 2
	maxUsernameLen = maxNameLen

	loginRateWindow  = time.Minute
	maxLoginAttempts = 10
)

var (
	errBadCredentials = errors.New("invalid username or password")
	errThrottled      = errors.New("too many login attempts, try again later")
)

// Auth issues and validates explorer account tokens. The signing secret
// lives in the settings table so tokens survive restarts.
type Auth struct {
	db        *DB
	jwtSecret []byte

	throttleMu sync.Mutex
	throttle   map[string]*loginThrottle // keyed by client IP
}

type loginThrottle struct {
	attempts  int
	windowEnd time.Time
}

// NewAuth creates an Auth handler over db
func NewAuth(db *DB) *Auth {
	return &Auth{
		db:        db,
		jwtSecret: loadOrCreateSecret(db),
		throttle:  make(map[string]*loginThrottle),
	}
}

// loadOrCreateSecret returns the persisted signing secret, minting and
// storing a fresh 32-byte one on first run.
func loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		h, err := db.GetSetting("jwt_secret")
		if err == nil {
			if b, decErr := hex.DecodeString(h); decErr == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("jwt secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting("jwt_secret", hex.EncodeToString(secret)); err != nil {
			log.Printf("persist jwt secret: %v", err)
		}
	}
	return secret
}

// Register creates an explorer account and returns its id and a signed
// token. New accounts start at level 1.
func (a *Auth) Register(username, password string) (int64, string, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return 0, "", err
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return 0, "", fmt.Errorf("password must be %d-%d characters", minPasswordLen, maxPasswordLen)
	}

	exists, err := a.db.UsernameExists(username)
	if err != nil {
		return 0, "", errors.New("database error")
	}
	if exists {
		return 0, "", errors.New("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, "", errors.New("internal error")
	}
	id, err := a.db.CreatePlayer(username, "", string(hash))
	if err != nil {
		return 0, "", errors.New("failed to create account")
	}

	token, err := a.mintToken(id, username, 1)
	if err != nil {
		return 0, "", errors.New("internal error")
	}
	return id, token, nil
}

// validateUsername enforces the display-name contract: 2-16 word
// characters, since the username is what other explorers see in-world.
func validateUsername(name string) error {
	if len(name) < minUsernameLen || len(name) > maxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return errors.New("username may only use letters, digits and underscore")
		}
	}
	return nil
}

// Login authenticates an explorer and returns a fresh token carrying
// their current level
func (a *Auth) Login(username, password, ip string) (int64, string, error) {
	if !a.allowAttempt(ip) {
		return 0, "", errThrottled
	}

	player, err := a.db.GetPlayerByUsername(username)
	if err != nil {
		return 0, "", errors.New("database error")
	}
	if player == nil || player.PassHash == "" {
		return 0, "", errBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(player.PassHash), []byte(password)) != nil {
		return 0, "", errBadCredentials
	}

	level := 1
	if stats, err := a.db.GetStats(player.ID); err == nil && stats != nil {
		level = stats.Level
	}
	token, err := a.mintToken(player.ID, player.Username, level)
	if err != nil {
		return 0, "", errors.New("internal error")
	}
	return player.ID, token, nil
}

// ValidateToken checks signature and expiry and returns the explorer's
// id and username
func (a *Auth) ValidateToken(tokenStr string) (int64, string, error) {
	token, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (interface{}, error) { return a.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	name, ok := claims["name"].(string)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	return int64(sub), name, nil
}

// mintToken signs a token for one explorer. lvl is the exploration
// level at issue time; the client shows it on the account splash
// without a profile round trip, authorization trusts only sub and name.
func (a *Auth) mintToken(playerID int64, username string, level int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  playerID,
		"name": username,
		"lvl":  level,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	})
	return token.SignedString(a.jwtSecret)
}

// allowAttempt counts a login attempt from ip against a fixed window,
// pruning expired windows as it goes
func (a *Auth) allowAttempt(ip string) bool {
	a.throttleMu.Lock()
	defer a.throttleMu.Unlock()

	now := time.Now()
	for addr, t := range a.throttle {
		if now.After(t.windowEnd) {
			delete(a.throttle, addr)
		}
	}

	t, ok := a.throttle[ip]
	if !ok {
		a.throttle[ip] = &loginThrottle{attempts: 1, windowEnd: now.Add(loginRateWindow)}
		return true
	}
	t.attempts++
	return t.attempts <= maxLoginAttempts
}

// guestFlavors seeds anonymous explorer names
var guestFlavors = []string{
	"Taffy", "Fudge", "Jelly", "Caramel",
	"Nougat", "Truffle", "Praline", "Sherbet",
}

// GenerateGuestName names an anonymous explorer after a random sweet,
// like "Taffy_a3f2"
func GenerateGuestName() string {
	b := make([]byte, 3)
	rand.Read(b)
	return guestFlavors[int(b[0])%len(guestFlavors)] + "_" + hex.EncodeToString(b[1:])
}
