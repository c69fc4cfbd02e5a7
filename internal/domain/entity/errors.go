package entity

// ValidationError reports a bad option value. Flag names the offending
// flag (or "url" for the positional argument).
type ValidationError struct {
	Flag   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Flag + ": " + e.Reason
}
