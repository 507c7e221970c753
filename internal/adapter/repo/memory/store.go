package memory

import (
	"context"
	"encoding/hex"
	"sync"

	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"

	"nationsim/internal/app/ports"
)

// Store holds all authoritative world state behind a single RWMutex. The
// TxManager takes the write lock for every mutating use case; read-only
// repo methods take the read lock unless they already run inside a
// transaction, so queries always see a consistent snapshot.
type Store struct {
	mu sync.RWMutex

	regions     map[string]world.Region
	regionOrder []string

	nations     map[string]nation.Nation
	nationOrder []string

	credentials map[string]ports.NationCredentialRecord // keyed by hex key hash

	treaties    map[string]nation.Treaty
	treatyOrder []string

	wars []nation.War

	actions []nation.Action    // newest last, trimmed to ActionLogCapacity
	events  []nation.WorldEvent // newest last, ring of EventFeedCapacity

	clock world.Clock
}

func NewStore(clock world.Clock) *Store {
	return &Store{
		regions:     make(map[string]world.Region),
		nations:     make(map[string]nation.Nation),
		credentials: make(map[string]ports.NationCredentialRecord),
		treaties:    make(map[string]nation.Treaty),
		clock:       clock,
	}
}

// SeedRegions installs the world map. Called once at startup, before the
// server accepts traffic.
func (s *Store) SeedRegions(regions []world.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range regions {
		if _, exists := s.regions[r.ID]; !exists {
			s.regionOrder = append(s.regionOrder, r.ID)
		}
		s.regions[r.ID] = r
	}
}

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey, true)
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

// rlock takes the read lock unless the caller already holds the write lock
// through the TxManager. Returns the matching unlock.
func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func hashKeyString(hash []byte) string {
	return hex.EncodeToString(hash)
}

func copyRegion(r world.Region) world.Region {
	r.AdjacentRegions = append([]string(nil), r.AdjacentRegions...)
	if r.LastHarvested != nil {
		t := *r.LastHarvested
		r.LastHarvested = &t
	}
	return r
}

func copyNation(n nation.Nation) nation.Nation {
	n.Regions = append([]string(nil), n.Regions...)
	n.Policies = append([]string(nil), n.Policies...)
	return n
}

func copyTreaty(t nation.Treaty) nation.Treaty {
	t.Terms.Conditions = append([]string(nil), t.Terms.Conditions...)
	if t.ExpiresAt != nil {
		at := *t.ExpiresAt
		t.ExpiresAt = &at
	}
	return t
}
