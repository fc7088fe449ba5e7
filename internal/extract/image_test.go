package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogflow/shelfscan/internal/common"
)

func jpegBytes() []byte { return []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10} }
func pngBytes() []byte  { return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A} }
func webpBytes() []byte {
	return []byte{'R', 'I', 'F', 'F', 0x24, 0x00, 0x00, 0x00, 'W', 'E', 'B', 'P'}
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "valid jpeg", data: jpegBytes()},
		{name: "valid png", data: pngBytes()},
		{name: "valid webp", data: webpBytes()},
		{name: "empty payload", data: nil, wantErr: common.ErrInvalidImage},
		{name: "zero length", data: []byte{}, wantErr: common.ErrInvalidImage},
		{name: "unrecognized signature", data: []byte("GIF89a.......sorry"), wantErr: common.ErrInvalidImage},
		{name: "text masquerading as image", data: []byte("hello receipt"), wantErr: common.ErrInvalidImage},
		{name: "truncated riff without webp", data: []byte("RIFF0000AVI "), wantErr: common.ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.data)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateImage_SizeCap(t *testing.T) {
	oversized := make([]byte, MaxImageSize+1)
	copy(oversized, jpegBytes())

	err := ValidateImage(oversized)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrImageTooLarge)

	atLimit := make([]byte, MaxImageSize)
	copy(atLimit, jpegBytes())
	assert.NoError(t, ValidateImage(atLimit))
}

func TestDetectImageMIME(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetectImageMIME(jpegBytes()))
	assert.Equal(t, "image/png", DetectImageMIME(pngBytes()))
	assert.Equal(t, "image/webp", DetectImageMIME(webpBytes()))
	assert.Equal(t, "application/octet-stream", DetectImageMIME([]byte("not an image")))
}
