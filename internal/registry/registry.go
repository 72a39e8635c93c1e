// Package registry keeps the set of playable modes. Modes register a
// factory in init(); the CLI, menus and SSH sessions look them up by ID.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/core"
)

// ErrUnknown is returned by Create for an ID nobody registered.
var ErrUnknown = errors.New("registry: unknown mode")

// Game is a playable mode as the platform loop sees it.
// Implementations hold pure game logic; input mapping, timing and
// terminal output belong to the platform.
type Game interface {
	// ID is the stable key used on the command line and in storage.
	ID() string
	Title() string

	// Reset starts a fresh run with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// mid-run. Games without it are reset on resize.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
	seq     int // registration order
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
	nextSeq int
)

// Register adds a factory under id. It panics if id is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title(), seq: nextSeq}
	nextSeq++
}

// Replace registers f under id, overwriting any existing factory.
// A replaced mode keeps its place in List.
func Replace(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	e, exists := entries[id]
	if !exists {
		e.seq = nextSeq
		nextSeq++
	}
	e.factory = f
	e.title = f().Title()
	entries[id] = e
}

// List returns every registered mode in registration order, so built-in
// modes appear from easiest to hardest.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return entries[a].seq - entries[b].seq
	})

	result := make([]GameInfo, len(ids))
	for i, id := range ids {
		result[i] = GameInfo{ID: id, Title: entries[id].title}
	}
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
