package pairmatch

type options struct {
	maxGroupSize int
	nullTries    int
	logger       *Logger
}

func defaultOptions() options {
	return options{
		maxGroupSize: 0,
		nullTries:    5,
		logger:       NoopLogger(),
	}
}

// Option configures Matcher construction behavior.
type Option func(*options)

// WithMaxGroupSize caps the number of rows kept per distinct value when
// building reverse indices. Value groups larger than max are replaced by a
// uniform random subsample of max rows (without replacement, drawn from the
// matcher's seeded source) and a warning is logged.
//
// This bounds worst-case pair counts for extremely skewed columns. A max of
// zero disables subsampling.
func WithMaxGroupSize(max int) Option {
	return func(o *options) {
		if max < 0 {
			max = 0
		}
		o.maxGroupSize = max
	}
}

// WithNullTries configures how many times SampleNullPair redraws before
// giving up with ErrSamplingExhausted. Defaults to 5.
func WithNullTries(tries int) Option {
	return func(o *options) {
		if tries > 0 {
			o.nullTries = tries
		}
	}
}

// WithLogger configures the logger used for warnings and debug output.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
