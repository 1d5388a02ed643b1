package gate

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrLocked        = errors.New("the operation is locked, unlock it with the organizer password")
	ErrWrongPassword = errors.New("wrong password")
	ErrEmptyPassword = errors.New("password is empty")
)

// Operations that can be protected
const (
	OpRanking = "ranking"
	OpSeed    = "seed"
	OpImport  = "import"
	OpClear   = "clear"
	OpScore   = "score"
)

const Cost = bcrypt.DefaultCost

// A Gate protects organizer operations behind a shared password.
//
// It is a convenience lock, not access control: anyone with the
// state file can edit it directly.
type Gate struct {
	hash      string
	protected map[string]bool
	unlocked  bool
}

// Creates a gate for the bcrypt hash. An empty hash gives a gate
// that never refuses.
func New(hash string, protected []string) *Gate {
	g := &Gate{
		hash:      strings.TrimSpace(hash),
		protected: make(map[string]bool, len(protected)),
	}
	for _, op := range protected {
		g.protected[strings.TrimSpace(op)] = true
	}
	return g
}

func (g *Gate) Enabled() bool {
	return g.hash != ""
}

func (g *Gate) Unlocked() bool {
	return !g.Enabled() || g.unlocked
}

func (g *Gate) Unlock(password string) error {
	if !g.Enabled() {
		return nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassword
	}
	if err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	g.unlocked = true
	return nil
}

func (g *Gate) Lock() {
	g.unlocked = false
}

// Returns ErrLocked when op is protected and the gate is locked
func (g *Gate) Authorize(op string) error {
	if g.Unlocked() || !g.protected[op] {
		return nil
	}
	return ErrLocked
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	return string(bytes), err
}
