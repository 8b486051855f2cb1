// Package ocr defines the contract with the external text-extraction
// service. The service itself lives outside this module; reconciliation only
// consumes its text output.
package ocr

import "context"

// Extraction is the text pulled from one timing-board image.
type Extraction struct {
	Text       string
	Lines      []string
	Confidence float64
}

// Extractor produces an Extraction from raw image bytes.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (Extraction, error)
}
