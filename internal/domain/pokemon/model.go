package pokemon

import (
	"bytes"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Pokemon is an immutable catalog record keyed by its PokeAPI id.
type Pokemon struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Height    int       `json:"height"`
	Weight    int       `json:"weight"`
	Order     int       `json:"order"`
	Species   Resource  `json:"species"`
	Form      Resource  `json:"form"`
	Sprites   Sprites   `json:"sprites"`
	Types     Types     `json:"types"`
	Stats     Stats     `json:"stats"`
	Abilities Abilities `json:"abilities"`
	Moves     Moves     `json:"moves"`
}

func (p Pokemon) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("pokemon id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pokemon name is required")
	}

	return nil
}

// Matches reports whether term is a substring of the name or of any type name.
// term is expected to be trimmed and lower-cased already.
func (p Pokemon) Matches(term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	for _, t := range p.Types {
		if strings.Contains(strings.ToLower(string(t.Type)), term) {
			return true
		}
	}
	return false
}

// Resource is a PokeAPI named reference.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Sprites struct {
	FrontDefault     string         `json:"front_default"`
	FrontFemale      string         `json:"front_female"`
	FrontShiny       string         `json:"front_shiny"`
	FrontShinyFemale string         `json:"front_shiny_female"`
	BackDefault      string         `json:"back_default"`
	BackFemale       string         `json:"back_female"`
	BackShiny        string         `json:"back_shiny"`
	BackShinyFemale  string         `json:"back_shiny_female"`
	Other            map[string]any `json:"other,omitempty"`
}

func (s *Sprites) UnmarshalJSON(data []byte) error {
	var raw struct {
		FrontDefault     *string        `json:"front_default"`
		FrontFemale      *string        `json:"front_female"`
		FrontShiny       *string        `json:"front_shiny"`
		FrontShinyFemale *string        `json:"front_shiny_female"`
		BackDefault      *string        `json:"back_default"`
		BackFemale       *string        `json:"back_female"`
		BackShiny        *string        `json:"back_shiny"`
		BackShinyFemale  *string        `json:"back_shiny_female"`
		Other            map[string]any `json:"other"`
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*s = Sprites{}
		return nil
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode sprites: %w", err)
	}

	*s = Sprites{
		FrontDefault:     deref(raw.FrontDefault),
		FrontFemale:      deref(raw.FrontFemale),
		FrontShiny:       deref(raw.FrontShiny),
		FrontShinyFemale: deref(raw.FrontShinyFemale),
		BackDefault:      deref(raw.BackDefault),
		BackFemale:       deref(raw.BackFemale),
		BackShiny:        deref(raw.BackShiny),
		BackShinyFemale:  deref(raw.BackShinyFemale),
		Other:            raw.Other,
	}
	return nil
}

type TypeSlot struct {
	Type Name `json:"type"`
	Slot int  `json:"slot"`
}

type StatEntry struct {
	Stat     Name `json:"stat"`
	BaseStat int  `json:"base_stat"`
	Effort   int  `json:"effort"`
}

type AbilitySlot struct {
	Ability  Name `json:"ability"`
	IsHidden bool `json:"is_hidden"`
	Slot     int  `json:"slot"`
}

type MoveEntry struct {
	Move                Name                `json:"move"`
	VersionGroupDetails VersionGroupDetails `json:"version_group_details"`
}

type VersionGroupDetail struct {
	MoveLearnMethod Name `json:"move_learn_method"`
	VersionGroup    Name `json:"version_group"`
	LevelLearnedAt  int  `json:"level_learned_at"`
}

type (
	Types               []TypeSlot
	Stats               []StatEntry
	Abilities           []AbilitySlot
	Moves               []MoveEntry
	VersionGroupDetails []VersionGroupDetail
)

func (t *Types) UnmarshalJSON(data []byte) error {
	items, err := decodeList[TypeSlot](data)
	*t = items
	return err
}

func (s *Stats) UnmarshalJSON(data []byte) error {
	items, err := decodeList[StatEntry](data)
	*s = items
	return err
}

func (a *Abilities) UnmarshalJSON(data []byte) error {
	items, err := decodeList[AbilitySlot](data)
	*a = items
	return err
}

func (m *Moves) UnmarshalJSON(data []byte) error {
	items, err := decodeList[MoveEntry](data)
	*m = items
	return err
}

func (v *VersionGroupDetails) UnmarshalJSON(data []byte) error {
	items, err := decodeList[VersionGroupDetail](data)
	*v = items
	return err
}

// decodeList treats anything that is not a JSON array as an empty list.
func decodeList[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return []T{}, nil
	}

	out := make([]T, 0)
	if err := sonic.Unmarshal(data, &out); err != nil {
		return []T{}, err
	}
	return out, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
