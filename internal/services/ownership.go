package services

// owned is any record that carries its owning user's identifier.
type owned interface {
	Owner() string
}

// assertOwner fails with ErrForbidden unless callerID matches the record's
// stored owner. This is the single ownership primitive; both routines and
// workouts go through it.
func assertOwner(record owned, callerID string) error {
	if record.Owner() != callerID {
		return ErrForbidden
	}
	return nil
}
