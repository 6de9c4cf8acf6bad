package cache

import (
	"fmt"
	"strings"

	"github.com/mirkobrombin/go-recency/v1/engine"
	recerrors "github.com/mirkobrombin/go-recency/v1/errors"
)

// Strategy identifies the eviction policy of the engine a Cache uses.
type Strategy int

const (
	// LRUStrategy evicts the least recently used entry.
	LRUStrategy Strategy = iota
	// MRUStrategy is reserved for a most-recently-used policy. No engine
	// ships for it; a caller may still register one.
	MRUStrategy
	// LFUStrategy evicts an approximately least frequently used entry.
	LFUStrategy
)

func (s Strategy) String() string {
	switch s {
	case LRUStrategy:
		return "lru"
	case MRUStrategy:
		return "mru"
	case LFUStrategy:
		return "lfu"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy returns the Strategy named by s, ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lru":
		return LRUStrategy, nil
	case "mru":
		return MRUStrategy, nil
	case "lfu":
		return LFUStrategy, nil
	}
	return 0, fmt.Errorf("parse strategy %q: %w", s, recerrors.ErrInvalidStrategy)
}

// Registry maps each strategy to the engine serving it.
type Registry[K comparable, V any] map[Strategy]engine.Engine[K, V]
