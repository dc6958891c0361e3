package document

import "errors"

var (
	ErrParse       = errors.New("document: parse failed")
	ErrUnsupported = errors.New("document: unsupported file type")
	ErrPDFLicense  = errors.New("document: pdf support requires a unidoc license key")
)
