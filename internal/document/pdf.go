package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	pdfmodel "github.com/unidoc/unipdf/v3/model"
)

// extractPDFText concatenates the text of every page.
func extractPDFText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	reader, err := pdfmodel.NewPdfReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrParse, err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("%w: page count: %v", ErrParse, err)
	}

	var buf strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrParse, i, err)
		}
		ex, err := extractor.New(page)
		if err != nil {
			return "", fmt.Errorf("%w: page %d extractor: %v", ErrParse, i, err)
		}
		text, err := ex.ExtractText()
		if err != nil {
			return "", fmt.Errorf("%w: page %d text: %v", ErrParse, i, err)
		}
		if text != "" {
			buf.WriteString(text)
			buf.WriteString("\n\n")
		}
	}

	return strings.TrimSpace(buf.String()), nil
}
