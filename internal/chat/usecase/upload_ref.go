package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spendly/internal/chat"
)

// resolveUpload maps a client supplied reference to an existing regular file
// inside uploadDir. Both a path as returned by the upload endpoint and a
// bare stored file name are accepted.
func resolveUpload(uploadDir, ref string) (string, error) {
	if uploadDir == "" {
		return "", fmt.Errorf("%w: uploads are disabled", chat.ErrInvalidDocument)
	}
	root, err := filepath.Abs(uploadDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", chat.ErrInvalidDocument, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	ref = filepath.Clean(strings.TrimSpace(ref))
	candidates := []string{ref}
	if !filepath.IsAbs(ref) {
		candidates = append(candidates, filepath.Join(root, ref))
	}

	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		real, err := filepath.EvalSymlinks(abs)
		if err != nil {
			continue
		}
		if !within(root, real) {
			continue
		}
		info, err := os.Stat(real)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return real, nil
	}
	return "", chat.ErrInvalidDocument
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
