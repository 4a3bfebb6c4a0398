package banner

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const MediaTypePNG = "image/png"

var ErrInvalidDataURL = errors.New("invalid data url")

// DecodeDataURL returns the binary payload of a base64 data URL. Only the text
// after the first comma is decoded; the media type prefix is not inspected.
func DecodeDataURL(dataURL string) ([]byte, error) {
	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, fmt.Errorf("%w: missing ',' separator", ErrInvalidDataURL)
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidDataURL)
	}

	return data, nil
}

// decodeBase64 accepts standard base64 with or without padding and ignores
// embedded whitespace such as MIME line breaks.
func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)

	if strings.HasSuffix(payload, "=") {
		return base64.StdEncoding.DecodeString(payload)
	}
	return base64.RawStdEncoding.DecodeString(payload)
}

// EncodeDataURL wraps data as "data:<mediaType>;base64,<payload>".
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
