package service

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs the local tesseract engine on images.
type Tesseract struct {
	languages []string
}

func NewTesseract(languages []string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Tesseract{languages: languages}
}

func (t *Tesseract) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set tesseract languages: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}
	return client.Text()
}
