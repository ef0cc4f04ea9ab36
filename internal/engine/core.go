package engine

// Named identifies a component in diagnostics.
type Named interface {
	Name() string
	Kind() string
}
