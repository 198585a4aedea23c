//go:build unit

package memstore

// LockSlots exposes the number of live lock slots to tests.
func LockSlots(s *Store) int { return s.locks.size() }
