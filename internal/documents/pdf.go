package documents

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfHeader = []byte("%PDF-")

func init() {
	// Validation only; no pdfcpu config directory on disk.
	api.DisableConfigDir()
}

// ValidatePDF checks data is a readable PDF and returns its page count.
// Failures wrap ErrInvalidPDF.
func ValidatePDF(data []byte) (int, error) {
	if !bytes.HasPrefix(data, pdfHeader) {
		return 0, fmt.Errorf("%w: missing header", ErrInvalidPDF)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}
	return ctx.PageCount, nil
}
