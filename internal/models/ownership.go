package models

// Owner returns the ID of the user who authored the routine. Premade
// routines have no owner and return the empty string.
func (r *Routine) Owner() string {
	return r.UserID
}

// Owner returns the ID of the user who logged the workout.
func (w *Workout) Owner() string {
	return w.UserID
}
