package analytics

import "fmt"

// ErrorCode classifies why a plugin call was rejected.
type ErrorCode string

// Error codes, one per rejection kind. The bridge reports them as span attributes.
const (
	// CodeConfigurationMissing means Initialize got no options, or options naming no handle source.
	CodeConfigurationMissing ErrorCode = "configuration_missing"
	// CodeNotInitialized means no handle exists when a handle-dependent operation runs.
	CodeNotInitialized ErrorCode = "not_initialized"
	// CodeMissingField means a required option is empty or absent.
	CodeMissingField ErrorCode = "missing_field"
	// CodeNotSupported means the operation is not available on this platform variant.
	CodeNotSupported ErrorCode = "not_supported"
)

// PluginError is the rejection carried back to the caller of a single operation.
type PluginError struct {
	Code    ErrorCode
	Message string
	Field   string
}

func (e *PluginError) Error() string {
	return e.Message
}

// Is matches any PluginError with the same code, so errors.Is(err, ErrMissingField)
// holds for every missing field.
func (e *PluginError) Is(target error) bool {
	t, ok := target.(*PluginError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel rejections. Compare with errors.Is, which matches on Code.
var (
	// ErrConfigurationMissing is returned by Initialize when there is nothing to build a
	// handle from.
	ErrConfigurationMissing = &PluginError{Code: CodeConfigurationMissing, Message: "analytics configuration is missing"}
	// ErrNotInitialized is returned while the delegate holds no handle, and wraps
	// failures to obtain one.
	ErrNotInitialized = &PluginError{Code: CodeNotInitialized, Message: "analytics is not initialized. Make sure Initialize() is called once"}
	// ErrMissingField matches every MissingField error.
	ErrMissingField = &PluginError{Code: CodeMissingField, Message: "property is missing"}
	// ErrNotSupported is returned by operations the platform variant does not offer.
	ErrNotSupported = &PluginError{Code: CodeNotSupported, Message: "This method is not supported"}
)

// MissingField reports a required option that is empty or absent.
func MissingField(field string) *PluginError {
	return &PluginError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s property is missing", field),
		Field:   field,
	}
}
