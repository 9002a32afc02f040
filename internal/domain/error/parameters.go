// Package error defines domain-specific errors for the acquisitions finance service.
package error

// Parameter is a named value interpolated into an error message.
type Parameter struct {
	Key   string
	Value string
}

// ErrorDetail describes one violated rule when several are reported together.
type ErrorDetail struct {
	Code       string
	Message    string
	Parameters []Parameter
}

// NewParameter creates a Parameter.
func NewParameter(key, value string) Parameter {
	return Parameter{Key: key, Value: value}
}
