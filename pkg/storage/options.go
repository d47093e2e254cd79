package storage

// Option configures Put.
type Option func(*putOptions)

type putOptions struct {
	key         string
	prefix      string
	contentType string
	acl         ACL
	rules       []ValidationRule
}

// WithKey sets an explicit object key instead of a generated one.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithPrefix overrides the configured key prefix.
func WithPrefix(prefix string) Option {
	return func(o *putOptions) {
		o.prefix = prefix
	}
}

// WithContentType skips magic-byte detection.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithACL sets the canned ACL. Objects are private by default.
func WithACL(acl ACL) Option {
	return func(o *putOptions) {
		o.acl = acl
	}
}

// WithValidation adds rules checked before upload. A failing rule aborts the
// upload with a *FileValidationError.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) {
		o.rules = append(o.rules, rules...)
	}
}
