package models

import "time"

// Routine categories and difficulty levels accepted by the API.
const (
	CategoryStrength    = "strength"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
	CategorySports      = "sports"
	CategoryCustom      = "custom"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Exercise is a single entry in a routine. Exercises have no identity of
// their own; they live and die with the routine that embeds them.
type Exercise struct {
	Name  string `json:"name" validate:"required"`
	Sets  int    `json:"sets" validate:"required,min=1"`
	Reps  string `json:"reps" validate:"required"` // String so ranges like "8-12" are allowed
	Rest  string `json:"rest"`
	Notes string `json:"notes,omitempty"`
}

// Routine is a named, ordered template of exercises. Premade routines are
// system-provided and have no owner; custom routines belong to the user
// who authored them.
type Routine struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Category    string     `json:"category" validate:"omitempty,oneof=strength cardio flexibility sports custom"`
	Difficulty  string     `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration    string     `json:"duration"`
	Exercises   []Exercise `json:"exercises" gorm:"serializer:json" validate:"omitempty,dive"`
	UserID      string     `json:"user_id,omitempty" gorm:"index;type:varchar(36)"`
	IsPremade   bool       `json:"is_premade"`
	CreatedAt   time.Time  `json:"created_at"`
}
