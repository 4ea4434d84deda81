package pretty

// Options configures a Renderer.
type Options struct {
	// Describer names types missing from the built-in table (default: ReflectDescriber)
	Describer TypeDescriber

	// MaxDepth caps container nesting, 0 means no cap. Containers deeper
	// than the cap render as (type)address.
	MaxDepth int
}

// DefaultOptions returns the options used by Render and Write.
func DefaultOptions() Options {
	return Options{
		Describer: ReflectDescriber{},
	}
}

// Option changes one field of Options.
type Option func(*Options)

// WithDescriber replaces the type describer. A nil describer names types
// with reflect.Type.String.
func WithDescriber(d TypeDescriber) Option {
	return func(o *Options) {
		o.Describer = d
	}
}

// WithMaxDepth caps container nesting.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth < 0 {
			depth = 0
		}
		o.MaxDepth = depth
	}
}
