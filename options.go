package mdnum

// Option configures numbering behavior.
type Option func(*options)

type options struct {
	maxLevel      int
	stripExisting bool
	spaceHeaders  bool
}

func defaultOptions() options {
	return options{
		maxLevel:      MaxHeadingLevel,
		stripExisting: true,
	}
}

func buildOptions(opts []Option) options {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxLevel limits numbering to headings of level 1..n. Deeper headings
// pass through unchanged. Values outside 1..6 are ignored.
func WithMaxLevel(n int) Option {
	return func(cfg *options) {
		if n >= 1 && n <= MaxHeadingLevel {
			cfg.maxLevel = n
		}
	}
}

// WithStripExisting controls whether an existing dotted label is removed
// before a heading is renumbered.
func WithStripExisting(enabled bool) Option {
	return func(cfg *options) {
		cfg.stripExisting = enabled
	}
}

// WithHeaderSpacing ensures a blank line before and after each numbered
// heading.
func WithHeaderSpacing(enabled bool) Option {
	return func(cfg *options) {
		cfg.spaceHeaders = enabled
	}
}
