package gps

// PowerPin drives a receiver enable line: high powers the module,
// low cuts it. Platform constructors live behind build tags.
type PowerPin interface {
	Set(on bool) error
	Close() error
}
