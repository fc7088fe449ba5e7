package extract

import (
	"bytes"
	"fmt"

	"github.com/catalogflow/shelfscan/internal/common"
)

// MaxImageSize is the upper bound on receipt image payloads.
const MaxImageSize = 10 << 20 // 10 MB

// ValidateImage enforces the image boundary contract before any bytes reach
// the extraction collaborator: non-empty, within the size cap, and carrying
// a recognized JPEG, PNG, or WebP signature.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty image payload", common.ErrInvalidImage)
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", common.ErrImageTooLarge, len(data), MaxImageSize)
	}
	if !isJPEG(data) && !isPNG(data) && !isWebP(data) {
		return fmt.Errorf("%w: expected JPEG, PNG, or WebP", common.ErrInvalidImage)
	}
	return nil
}

// DetectImageMIME returns the MIME type for a validated image payload.
func DetectImageMIME(data []byte) string {
	switch {
	case isJPEG(data):
		return "image/jpeg"
	case isPNG(data):
		return "image/png"
	case isWebP(data):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func isJPEG(data []byte) bool {
	return len(data) >= 3 && bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF})
}

func isPNG(data []byte) bool {
	return len(data) >= 4 && bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47})
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
}
