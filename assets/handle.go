package assets

// LoadState is the resolution state of a Handle.
type LoadState int

const (
	StateLoading LoadState = iota
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle refers to an asset that may not have resolved yet. Handles are only
// written from Server.Update, so reading them from the tick goroutine needs no
// locking.
type Handle[T any] struct {
	path  string
	state LoadState
	value T
	err   error
}

// Ready wraps an in-memory value in an already resolved handle.
func Ready[T any](path string, value T) *Handle[T] {
	return &Handle[T]{path: path, state: StateLoaded, value: value}
}

func (h *Handle[T]) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

func (h *Handle[T]) State() LoadState {
	if h == nil {
		return StateFailed
	}
	return h.state
}

// Get returns the value once loaded. Loading and failed handles are inert.
func (h *Handle[T]) Get() (T, bool) {
	var zero T
	if h == nil || h.state != StateLoaded {
		return zero, false
	}
	return h.value, true
}

// Err returns the load failure, if any.
func (h *Handle[T]) Err() error {
	if h == nil {
		return ErrNotLoaded
	}
	return h.err
}

func (h *Handle[T]) resolve(value T, err error) {
	if err != nil {
		h.state = StateFailed
		h.err = err
		return
	}
	h.value = value
	h.state = StateLoaded
}
