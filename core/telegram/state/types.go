package state

// Store owns one session value per conversation key.
type Store[T any] interface {
	// Do runs fn with exclusive access to the session of key. cur is nil
	// when no session exists. The returned pointer replaces the stored
	// session; nil removes it.
	Do(key int64, fn func(cur *T) *T)
	// Get returns a copy of the session for key.
	Get(key int64) (T, bool)
	// Has reports whether a session exists for key.
	Has(key int64) bool
	// Clear removes the session for key.
	Clear(key int64)
	// Len returns the number of live sessions.
	Len() int
}
