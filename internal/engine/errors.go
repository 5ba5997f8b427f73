package engine

// unmanagedEngineError signals a container operation against an engine this
// process does not manage, for 409 mapping.
type unmanagedEngineError struct{}

func (unmanagedEngineError) Error() string { return "engine is not managed by this service" }

// ErrUnmanagedEngine constructs an unmanagedEngineError.
func ErrUnmanagedEngine() error { return unmanagedEngineError{} }

// IsUnmanagedEngine reports whether err indicates the engine lifecycle is external.
func IsUnmanagedEngine(err error) bool {
	_, ok := err.(unmanagedEngineError)
	return ok
}

// startFailedError wraps a failed engine start command so callers can tell a
// fatal start from a readiness timeout.
type startFailedError struct{ msg string }

func (e startFailedError) Error() string { return "engine start failed: " + e.msg }

func errStartFailed(msg string) error { return startFailedError{msg: msg} }

// IsStartFailed reports whether err came from a failed start command.
func IsStartFailed(err error) bool {
	_, ok := err.(startFailedError)
	return ok
}
