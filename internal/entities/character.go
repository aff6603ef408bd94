package entities

import (
	"slices"
	"sort"
	"time"
)

// CharacterKind separates trainer sheets from Pokémon sheets
type CharacterKind string

const (
	CharacterKindTrainer CharacterKind = "trainer"
	CharacterKindPokemon CharacterKind = "pokemon"
)

func (k CharacterKind) Valid() bool {
	return k == CharacterKindTrainer || k == CharacterKindPokemon
}

const (
	MinLevel = 1
	MaxLevel = 100

	// MaxTypes is the number of elemental types a character can carry
	MaxTypes = 2
)

// Character is a trainer or Pokémon sheet and everything attached to it
type Character struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id"`
	CampaignID string        `json:"campaign_id,omitempty"`
	TrainerID  string        `json:"trainer_id,omitempty"`
	Kind       CharacterKind `json:"kind"`

	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
	Nature  string `json:"nature,omitempty"`
	Level   int    `json:"level"`

	Types        []PokemonType `json:"types,omitempty"`
	BaseStats    Stats         `json:"base_stats"`
	AddedStats   Stats         `json:"added_stats"`
	CombatStages Stages        `json:"combat_stages"`
	CurrentHP    int           `json:"current_hp"`
	Abilities    []string      `json:"abilities,omitempty"`

	Attachments []*Attachment `json:"attachments,omitempty"`

	// Version increases on every write and guards against lost updates
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Siblings returns the attachments of one kind ordered by position
func (c *Character) Siblings(kind AttachmentKind) []*Attachment {
	var out []*Attachment
	for _, a := range c.Attachments {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// Attachment finds an attachment by id
func (c *Character) Attachment(id int64) (*Attachment, bool) {
	for _, a := range c.Attachments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// RemoveAttachment drops the attachment with id and reports whether it existed.
// Sibling positions are left untouched.
func (c *Character) RemoveAttachment(id int64) bool {
	before := len(c.Attachments)
	c.Attachments = slices.DeleteFunc(c.Attachments, func(a *Attachment) bool { return a.ID == id })
	return len(c.Attachments) != before
}

// HasType reports whether the character carries t
func (c *Character) HasType(t PokemonType) bool {
	return slices.Contains(c.Types, t)
}

// Clone returns a deep copy so repositories never share mutable state with callers
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Types = slices.Clone(c.Types)
	out.Abilities = slices.Clone(c.Abilities)
	if c.Attachments != nil {
		out.Attachments = make([]*Attachment, len(c.Attachments))
		for i, a := range c.Attachments {
			out.Attachments[i] = a.Clone()
		}
	}
	return &out
}
