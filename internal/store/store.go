package store

// KV is the narrow, string-valued, synchronous storage primitive everything
// durable goes through. No key enumeration, no transactions.
//
// Get reports whether the key was present; an absent key is not an error.
// Set either durably stores the value or returns an error; it must never
// panic on quota or permission problems.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
