package bunch

import "errors"

// ErrDegenerateBunchSize indicates an rms bunch size of zero, for which the
// peak density of the Gaussian is undefined.
var ErrDegenerateBunchSize = errors.New("bunch: rms bunch size must not be zero")

// ProfileError wraps an error with the parameters it was raised for.
type ProfileError struct {
	Params  Parameters
	Wrapped error
}

func (e *ProfileError) Error() string {
	return e.Wrapped.Error()
}

func (e *ProfileError) Unwrap() error {
	return e.Wrapped
}
