package dto

// ValidationError reports that inbound request data failed a presence or
// format check. The message names the offending field; the caller is
// expected to correct the input and re-submit.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func requiredField(name string) *ValidationError {
	return &ValidationError{msg: "Field `" + name + "` is required."}
}

// wrapInvariant re-surfaces a domain invariant failure as a validation
// error, keeping one uniform error kind at the request boundary.
func wrapInvariant(err error) *ValidationError {
	return &ValidationError{msg: err.Error()}
}
