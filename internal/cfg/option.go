package cfg

// Option configures a Builder. Follows the teacher's functional-options
// idiom (analyzer.Option in analyzer/option.go).
type Option func(*Builder)

// WithClassifier overrides the default front-end node-kind classifier.
func WithClassifier(c Classifier) Option {
	return func(b *Builder) { b.classifier = c }
}

// WithFallthrough toggles switch-case fallthrough (spec.md §4.1: "fallthrough
// only if source permits (configurable — default: none)").
func WithFallthrough(allowed bool) Option {
	return func(b *Builder) { b.allowFallthrough = allowed }
}
