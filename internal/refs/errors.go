package refs

import "fmt"

// ValidationError reports malformed selection input: an out-of-range index,
// a reversed range, a non-numeric token or an empty selection.
type ValidationError struct {
	Token  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid selection: %s", e.Reason)
	}
	return fmt.Sprintf("invalid selection %q: %s", e.Token, e.Reason)
}

// NotFoundError reports that a query yielded zero references or worktrees.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found", e.Resource)
}
