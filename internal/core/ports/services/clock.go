package services

import "time"

// Clock abstracts the time source used for deadline comparisons, so tests can
// pin "now".
type Clock interface {
	Now() time.Time
}
