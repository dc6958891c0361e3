package slot

import "errors"

var (
	ErrMalformedExtraction = errors.New("slot: extraction is not a JSON object")
)
