package team

import (
	"context"
	"time"
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	Create(ctx context.Context, name string, now time.Time) (Team, error)
	// ReplaceMembers swaps the whole membership atomically. It returns
	// ErrTeamNotFound or *MissingPokemonError without writing anything.
	ReplaceMembers(ctx context.Context, teamID int64, pokemonIDs []int64, now time.Time) (Team, error)
}
