package leaderboard

import (
	"context"
	"errors"
	"sort"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var ErrInvalidRequest = errors.New("invalid leaderboard request")

type Entry struct {
	Rank       int    `json:"rank"`
	NationID   string `json:"nation_id"`
	NationName string `json:"nation_name"`
	Score      int    `json:"score"`
	Regions    int    `json:"regions"`
	Treasury   int    `json:"treasury"`
	Military   int    `json:"military"`
	Reputation int    `json:"reputation"`
}

// UseCase ranks nations by score. Defeated nations are dropped; ties break
// on nation id so the ordering is stable between calls.
type UseCase struct {
	Nations ports.NationRepository
}

func (u UseCase) Execute(ctx context.Context) ([]Entry, error) {
	if u.Nations == nil {
		return nil, ErrInvalidRequest
	}
	nations, err := u.Nations.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for _, n := range nations {
		if n.Status == nation.StatusDefeated {
			continue
		}
		entries = append(entries, Entry{
			NationID:   n.ID,
			NationName: n.Name,
			Score:      nation.Score(n),
			Regions:    len(n.Regions),
			Treasury:   n.Treasury,
			Military:   n.MilitaryPower,
			Reputation: n.Reputation,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].NationID < entries[j].NationID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
