// Package style holds configuration values that are either fixed or
// computed per datum, resolved when a frame is rendered.
package style

// Context is what a computed value sees when it is resolved.
type Context struct {
	Field string
	Value any
	Text  string
	Index int
}

// Value is either Static or Computed. The zero Value is unset and resolves
// to the zero T.
type Value[T any] struct {
	static T
	fn     func(Context) T
	set    bool
}

// Static returns a value that ignores the context.
func Static[T any](v T) Value[T] {
	return Value[T]{static: v, set: true}
}

// Computed returns a value produced by fn for every context.
func Computed[T any](fn func(Context) T) Value[T] {
	return Value[T]{fn: fn, set: fn != nil}
}

// IsSet reports whether v was given.
func (v Value[T]) IsSet() bool { return v.set }

// Resolve evaluates v in ctx.
func (v Value[T]) Resolve(ctx Context) T {
	if v.fn != nil {
		return v.fn(ctx)
	}
	return v.static
}

// Or resolves v, falling back to def when v is unset.
func (v Value[T]) Or(ctx Context, def T) T {
	if !v.set {
		return def
	}
	return v.Resolve(ctx)
}

// Text is the part of a text style the engine needs for placement. Fill is
// passed through to the renderer untouched.
type Text struct {
	Fill     string
	FontSize float64
	Bold     bool
}
