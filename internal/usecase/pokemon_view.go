package usecase

import "github.com/riskibarqy/pokedex-api/internal/domain/pokemon"

// PokemonSummaryView is the lightweight list projection.
type PokemonSummaryView struct {
	ID      int64              `json:"id"`
	Name    string             `json:"name"`
	Sprites SummarySpritesView `json:"sprites"`
	Types   []SummaryTypeView  `json:"types"`
}

type SummarySpritesView struct {
	FrontDefault *string `json:"front_default"`
}

type SummaryTypeView struct {
	Type NamedView `json:"type"`
	Slot int       `json:"slot"`
}

type NamedView struct {
	Name string `json:"name"`
}

// PokemonDetailView is the full record projection with nested names unwrapped.
type PokemonDetailView struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Sprites   DetailSpritesView   `json:"sprites"`
	Types     []DetailTypeView    `json:"types"`
	Height    int                 `json:"height"`
	Weight    int                 `json:"weight"`
	Moves     []DetailMoveView    `json:"moves"`
	Order     int                 `json:"order"`
	Species   ResourceView        `json:"species"`
	Stats     []DetailStatView    `json:"stats"`
	Abilities []DetailAbilityView `json:"abilities"`
	Form      ResourceView        `json:"form"`
}

type DetailSpritesView struct {
	FrontDefault     *string `json:"front_default"`
	FrontFemale      *string `json:"front_female"`
	FrontShiny       *string `json:"front_shiny"`
	FrontShinyFemale *string `json:"front_shiny_female"`
	BackDefault      *string `json:"back_default"`
	BackFemale       *string `json:"back_female"`
	BackShiny        *string `json:"back_shiny"`
	BackShinyFemale  *string `json:"back_shiny_female"`
}

type DetailTypeView struct {
	Type string `json:"type"`
	Slot int    `json:"slot"`
}

type DetailStatView struct {
	Stat     string `json:"stat"`
	BaseStat int    `json:"base_stat"`
	Effort   int    `json:"effort"`
}

type DetailAbilityView struct {
	Ability  string `json:"ability"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

type DetailMoveView struct {
	Move                string                   `json:"move"`
	VersionGroupDetails []DetailVersionGroupView `json:"version_group_details"`
}

type DetailVersionGroupView struct {
	MoveLearnMethod string `json:"move_learn_method"`
	VersionGroup    string `json:"version_group"`
	LevelLearnedAt  int    `json:"level_learned_at"`
}

type ResourceView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func NewPokemonSummaryView(p pokemon.Pokemon) PokemonSummaryView {
	types := make([]SummaryTypeView, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, SummaryTypeView{
			Type: NamedView{Name: t.Type.String()},
			Slot: t.Slot,
		})
	}

	return PokemonSummaryView{
		ID:      p.ID,
		Name:    p.Name,
		Sprites: SummarySpritesView{FrontDefault: nullableURL(p.Sprites.FrontDefault)},
		Types:   types,
	}
}

func NewPokemonSummaryViews(items []pokemon.Pokemon) []PokemonSummaryView {
	out := make([]PokemonSummaryView, 0, len(items))
	for _, item := range items {
		out = append(out, NewPokemonSummaryView(item))
	}
	return out
}

func NewPokemonDetailView(p pokemon.Pokemon) PokemonDetailView {
	types := make([]DetailTypeView, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, DetailTypeView{Type: t.Type.String(), Slot: t.Slot})
	}

	stats := make([]DetailStatView, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, DetailStatView{
			Stat:     s.Stat.String(),
			BaseStat: s.BaseStat,
			Effort:   s.Effort,
		})
	}

	abilities := make([]DetailAbilityView, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		abilities = append(abilities, DetailAbilityView{
			Ability:  a.Ability.String(),
			IsHidden: a.IsHidden,
			Slot:     a.Slot,
		})
	}

	moves := make([]DetailMoveView, 0, len(p.Moves))
	for _, m := range p.Moves {
		details := make([]DetailVersionGroupView, 0, len(m.VersionGroupDetails))
		for _, d := range m.VersionGroupDetails {
			details = append(details, DetailVersionGroupView{
				MoveLearnMethod: d.MoveLearnMethod.String(),
				VersionGroup:    d.VersionGroup.String(),
				LevelLearnedAt:  d.LevelLearnedAt,
			})
		}
		moves = append(moves, DetailMoveView{
			Move:                m.Move.String(),
			VersionGroupDetails: details,
		})
	}

	return PokemonDetailView{
		ID:   p.ID,
		Name: p.Name,
		Sprites: DetailSpritesView{
			FrontDefault:     nullableURL(p.Sprites.FrontDefault),
			FrontFemale:      nullableURL(p.Sprites.FrontFemale),
			FrontShiny:       nullableURL(p.Sprites.FrontShiny),
			FrontShinyFemale: nullableURL(p.Sprites.FrontShinyFemale),
			BackDefault:      nullableURL(p.Sprites.BackDefault),
			BackFemale:       nullableURL(p.Sprites.BackFemale),
			BackShiny:        nullableURL(p.Sprites.BackShiny),
			BackShinyFemale:  nullableURL(p.Sprites.BackShinyFemale),
		},
		Types:     types,
		Height:    p.Height,
		Weight:    p.Weight,
		Moves:     moves,
		Order:     p.Order,
		Species:   ResourceView{Name: p.Species.Name, URL: p.Species.URL},
		Stats:     stats,
		Abilities: abilities,
		Form:      ResourceView{Name: p.Form.Name, URL: p.Form.URL},
	}
}

func nullableURL(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
