package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"
)

// DecodeDataURI pulls the raw bytes out of a "data:<mime>;base64,<data>"
// string (the format the page's camera capture posts).
func DecodeDataURI(dataURI string) ([]byte, error) {
	parts := strings.Split(dataURI, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:image") {
		return nil, fmt.Errorf("invalid image data URI")
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return data, nil
}

// ReencodeJPEG decodes JPEG or PNG input and re-encodes it as JPEG, the one
// format the outbound inference request carries. Malformed input is the
// user's problem, reported, never retried.
func ReencodeJPEG(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("unreadable image: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
