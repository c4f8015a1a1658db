package gazetteer

type options struct {
	cacheSize int
}

// Option configures Load and Parse
type Option func(*options)

// WithCacheSize bounds the resolve and suggestion memos; values below 1 keep the default
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}
