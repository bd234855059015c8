package config

// Reloader re-reads a scene definition from disk whenever the file changes.
type Reloader[T any, PT interface {
	*T
	Validator
}] struct {
	watcher *Watcher
	name    string
	path    string
}

// NewReloader watches path, an override of the embedded definition name.
func NewReloader[T any, PT interface {
	*T
	Validator
}](name, path string) (*Reloader[T, PT], error) {
	w, err := NewWatcher(path)
	if err != nil {
		return nil, err
	}
	return &Reloader[T, PT]{watcher: w, name: name, path: path}, nil
}

// Poll returns the new definition if the file changed since the last call,
// or nil when nothing changed. It never blocks.
func (r *Reloader[T, PT]) Poll() (*T, error) {
	changed := false
	for {
		if _, ok := r.watcher.Poll(); !ok {
			break
		}
		changed = true
	}
	select {
	case err, ok := <-r.watcher.Errors:
		if ok {
			return nil, err
		}
	default:
	}
	if !changed {
		return nil, nil
	}
	return LoadSpec[T, PT](r.name, r.path)
}

// Path returns the watched file.
func (r *Reloader[T, PT]) Path() string {
	return r.path
}

// Close stops watching.
func (r *Reloader[T, PT]) Close() error {
	return r.watcher.Close()
}
