package provider

import "fmt"

// ExecutionError reports that the provider process exited non-zero or
// could not be started. Output carries the raw combined stdout/stderr
// text so the user sees the provider's own diagnostic.
type ExecutionError struct {
	Output string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("provider failed: %s", e.Output)
	}
	return fmt.Sprintf("provider failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ProtocolError reports that the provider's reply could not be decoded
// as the structure the query contract promises.
type ProtocolError struct {
	Query string
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("provider reply to %s not understood: %v", e.Query, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
