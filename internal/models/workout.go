package models

import "time"

// Workout is one logged performance of a routine. It references its routine
// by ID; the Routine field is resolved at read time and may be nil if the
// routine was deleted after the workout was logged.
type Workout struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	RoutineID string    `json:"routine_id" gorm:"type:varchar(36)" validate:"required"`
	Routine   *Routine  `json:"routine" gorm:"foreignKey:RoutineID;references:ID"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration" validate:"required,gt=0"` // Minutes
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
