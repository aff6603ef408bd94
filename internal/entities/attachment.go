package entities

// AttachmentKind is the list an attachment belongs to on a sheet.
// Positions are dense per kind.
type AttachmentKind string

const (
	AttachmentKindMove       AttachmentKind = "move"
	AttachmentKindCapability AttachmentKind = "capability"
	AttachmentKindSkill      AttachmentKind = "skill"
	AttachmentKindEdge       AttachmentKind = "edge"
)

func (k AttachmentKind) Valid() bool {
	switch k {
	case AttachmentKindMove, AttachmentKindCapability, AttachmentKindSkill, AttachmentKindEdge:
		return true
	}
	return false
}

// MoveCategory is the damage class of a move
type MoveCategory string

const (
	MoveCategoryPhysical MoveCategory = "physical"
	MoveCategorySpecial  MoveCategory = "special"
	MoveCategoryStatus   MoveCategory = "status"
)

func (c MoveCategory) Valid() bool {
	return c == MoveCategoryPhysical || c == MoveCategorySpecial || c == MoveCategoryStatus
}

// Skill ranks run from Pathetic (1) to Virtuoso (6)
const (
	MinSkillRank = 1
	MaxSkillRank = 6
)

// Attachment is a move, capability, skill or edge on a character sheet
type Attachment struct {
	ID          int64          `json:"id"`
	Kind        AttachmentKind `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	SortOrder   int            `json:"sort_order"`

	// Move fields
	Type          PokemonType  `json:"type,omitempty"`
	Category      MoveCategory `json:"category,omitempty"`
	Frequency     string       `json:"frequency,omitempty"`
	AccuracyCheck int          `json:"accuracy_check,omitempty"`
	DamageDice    string       `json:"damage_dice,omitempty"`

	// Skill rank
	Rank int `json:"rank,omitempty"`

	// Capability value, e.g. Overland 7
	Value int `json:"value,omitempty"`
}

func (a *Attachment) Clone() *Attachment {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}

// Position returns the sort order; it matches the accessor shape sortorder expects
func Position(a *Attachment) int {
	return a.SortOrder
}
