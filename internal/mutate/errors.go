package mutate

import "fmt"

// InvalidRangeError reports a caller-supplied index outside the valid
// range of the target content stream. Index is the caller's value
// verbatim.
type InvalidRangeError struct {
	Index int64
	Max   int64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("index %d outside valid range [0, %d]", e.Index, e.Max)
}
