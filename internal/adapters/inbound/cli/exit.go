package cli

// ExitError carries the process exit code of a command whose report has
// already been printed. Message, when set, goes to stderr.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// failed signals exit code 1 after a report that did not pass.
func failed() error {
	return &ExitError{Code: 1}
}
