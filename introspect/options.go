package introspect

// Option configures fetcher behavior.
type Option func(*options)

type options struct {
	dialect Dialect
}

func defaultOptions() *options {
	return &options{
		dialect: SQLServer,
	}
}

// WithDialect selects the database engine the fetcher talks to.
// If not specified, defaults to SQLServer.
func WithDialect(dialect Dialect) Option {
	return func(o *options) {
		if dialect != nil {
			o.dialect = dialect
		}
	}
}
