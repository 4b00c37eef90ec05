package holidays

import "fmt"

// Stage names the step of a remote fetch that failed.
type Stage string

const (
	StageRequest   Stage = "request"
	StageDecode    Stage = "decode"
	StageNormalize Stage = "normalize"
)

// FetchError is the internal fault behind a fallback result.
type FetchError struct {
	Year  int
	Stage Stage
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching holidays for %d: %s: %v", e.Year, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
