package websocket

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownEntity is returned for an entity name outside EntityType
var ErrUnknownEntity = errors.New("unknown entity")

var knownEntities = map[EntityType]bool{
	EntityTypeTransaction:  true,
	EntityTypeBudget:       true,
	EntityTypeGoal:         true,
	EntityTypeNotification: true,
}

// ParseEntities parses a comma-separated list such as "notification,budget".
// An empty string yields nil, meaning every entity.
func ParseEntities(s string) ([]EntityType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []EntityType
	for _, part := range strings.Split(s, ",") {
		e := EntityType(strings.ToLower(strings.TrimSpace(part)))
		if e == "" {
			continue
		}
		if !knownEntities[e] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, part)
		}
		out = append(out, e)
	}
	return out, nil
}

// subscription is the set of entities a client receives events for.
// An empty set means all entities.
type subscription struct {
	mu       sync.RWMutex
	entities map[EntityType]bool
}

func newSubscription(entities []EntityType) *subscription {
	s := &subscription{}
	s.set(entities)
	return s
}

func (s *subscription) set(entities []EntityType) {
	m := make(map[EntityType]bool, len(entities))
	for _, e := range entities {
		m[e] = true
	}
	s.mu.Lock()
	s.entities = m
	s.mu.Unlock()
}

func (s *subscription) wants(entity EntityType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities) == 0 || s.entities[entity]
}

// subscribeMessage is the only frame clients may send:
// {"subscribe": ["notification", "budget"]}. An empty list restores all entities.
type subscribeMessage struct {
	Subscribe []string `json:"subscribe"`
}
