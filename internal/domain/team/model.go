package team

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MaxMembers    = 6
	MaxNameLength = 100
)

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrTooManyMembers  = fmt.Errorf("A team can have a maximum of %d Pokemon", MaxMembers)
	ErrDuplicateMember = errors.New("a pokemon can only appear once in a team")
)

// Team is a user-curated group of up to MaxMembers catalog records.
type Team struct {
	ID         int64
	Name       string
	PokemonIDs []int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t Team) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("team name is required")
	}
	if len([]rune(name)) > MaxNameLength {
		return fmt.Errorf("team name must be at most %d characters", MaxNameLength)
	}

	return ValidateMembers(t.PokemonIDs)
}

// ValidateMembers checks the size cap and rejects repeated ids. Ids without a
// catalog record, non-positive ones included, are reported by MissingIDs.
func ValidateMembers(ids []int64) error {
	if len(ids) > MaxMembers {
		return ErrTooManyMembers
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateMember, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// MissingPokemonError lists requested member ids that have no catalog record,
// in request order.
type MissingPokemonError struct {
	IDs []int64
}

func (e *MissingPokemonError) Error() string {
	return fmt.Sprintf("Pokemon with IDs %s not found", JoinIDs(e.IDs))
}

// MissingIDs returns the ids from requested that are absent from found,
// preserving request order.
func MissingIDs(requested []int64, found map[int64]struct{}) []int64 {
	var missing []int64
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func JoinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
