package llm

import "errors"

var (
	ErrEmptyGeneration = errors.New("llm: empty generation")
	ErrNoJSON          = errors.New("llm: no json object in response")
)
