package util

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateStoredPdfName returns a collision-resistant object name for an
// uploaded PDF. The unix-nano prefix keeps names roughly sortable by upload
// time, the nanoid suffix guards against two uploads in the same tick.
// Example output: "1757692800123456789_V1StGXR8Z5.pdf"
func GenerateStoredPdfName() (string, error) {
	suffix, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d_%s.pdf", time.Now().UnixNano(), suffix), nil
}
