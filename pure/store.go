package pure

import "errors"

// ErrStore wraps failures reported by a Store.
var ErrStore = errors.New("memo store failure")

// Store is the table behind a Memo. Implementations decide bounding and whether
// concurrent use is safe; a Memo adds no synchronization of its own.
type Store[O any] interface {
	Load(key Key) (value O, ok bool, err error)
	Store(key Key, value O) error
	Len() int
}
