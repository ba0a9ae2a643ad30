package postgres

import "time"

type teamTableModel struct {
	ID        int64     `db:"id,readonly"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamMemberTableModel struct {
	TeamID    int64 `db:"team_id"`
	PokemonID int64 `db:"pokemon_id"`
	Position  int   `db:"position"`
}
