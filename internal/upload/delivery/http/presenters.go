package http

import "spendly/internal/upload"

type uploadResp struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

func newUploadResp(f upload.File) uploadResp {
	return uploadResp{FileID: f.ID, Filename: f.Filename, Path: f.Path}
}
