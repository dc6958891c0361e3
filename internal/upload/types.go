package upload

import "io"

// SaveInput is one multipart file as received.
type SaveInput struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// File describes a stored upload. Path is what /chat accepts as file_path.
type File struct {
	ID       string `json:"file_id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}
