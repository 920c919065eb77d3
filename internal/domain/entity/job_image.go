package entity

import "time"

// JobImage referencia una foto (daños, notas) asociada a un trabajo.
type JobImage struct {
	ID        int64
	JobID     int64
	ImagePath string
	Caption   string
	CreatedAt time.Time
}
