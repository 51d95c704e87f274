package services

import "time"

// SetClock replaces the time source used for creation timestamps and events.
func SetClock(s *ProductService, now func() time.Time) {
	s.now = now
}
