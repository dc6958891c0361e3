package advisor

import "errors"

var (
	ErrNarrative   = errors.New("advisor: narrative generation failed")
	ErrNoGenerator = errors.New("advisor: no generator configured")
)
