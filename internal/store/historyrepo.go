package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizdeck/internal/history"
)

// HistoryRepo stores one realm's score-history map as a JSON object
// keyed by quiz id under the realm's history key. It implements
// history.Repo.
type HistoryRepo struct {
	store *Store
	realm Realm
}

// HistoryRepo returns the history repository for a realm.
func (s *Store) HistoryRepo(realm Realm) *HistoryRepo {
	return &HistoryRepo{store: s, realm: realm}
}

// All returns every history keyed by quiz id. An absent key yields an
// empty map; a corrupt value is recovered as empty with a warning.
func (r *HistoryRepo) All(ctx context.Context) (map[string]*history.ScoreHistory, error) {
	value, ok, err := r.store.Get(ctx, r.realm.HistoryKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]*history.ScoreHistory{}, nil
	}

	var all map[string]*history.ScoreHistory
	if err := json.Unmarshal([]byte(value), &all); err != nil {
		warnCorrupt(r.realm.HistoryKey(), err)
		return map[string]*history.ScoreHistory{}, nil
	}
	if all == nil {
		all = map[string]*history.ScoreHistory{}
	}
	return all, nil
}

// ReplaceAll writes the full history map back.
func (r *HistoryRepo) ReplaceAll(ctx context.Context, all map[string]*history.ScoreHistory) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return r.store.Set(ctx, r.realm.HistoryKey(), string(data))
}
