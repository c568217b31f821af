package slot

import "fmt"

// ParseError reports which incoming range failed validation and why.
// Index is -1 when the payload as a whole is malformed.
type ParseError struct {
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("range %d: %s", e.Index, e.Reason)
}
