package upload

import "errors"

var (
	ErrEmptyFile       = errors.New("uploaded file is empty")
	ErrTooLarge        = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedType = errors.New("only .csv, .txt and .pdf files are accepted")
)
