package entity

// JobTask es un ítem de la lista de chequeo de un trabajo.
type JobTask struct {
	ID          int64
	JobID       int64
	Description string
	IsCompleted bool
}
