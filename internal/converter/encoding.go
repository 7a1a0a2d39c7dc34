package converter

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

// binarySniffLen is how many leading bytes are inspected for NUL bytes,
// matching git's own binary heuristic
const binarySniffLen = 8000

// DecodeText decodes raw file bytes to UTF-8 text. Binary content and
// bytes that cannot be transcoded yield a domain.DecodeError, which
// callers recover from by skipping the file with a warning.
func DecodeText(path string, content []byte) (string, error) {
	if IsBinary(content) {
		return "", domain.NewDecodeError(path, "binary content")
	}

	if utf8.Valid(content) {
		return string(content), nil
	}

	decoded, err := ConvertToUTF8(content)
	if err != nil || !utf8.Valid(decoded) {
		return "", domain.NewDecodeError(path, "undecodable byte sequence")
	}
	return string(decoded), nil
}

// IsBinary reports whether content looks like binary data
func IsBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}

// DetectEncoding detects the character encoding of the content
func DetectEncoding(content []byte) string {
	_, name, _ := charset.DetermineEncoding(content, "")
	if name != "" {
		return name
	}
	return "utf-8"
}

// ConvertToUTF8 converts content from its detected encoding to UTF-8
func ConvertToUTF8(content []byte) ([]byte, error) {
	enc := DetectEncoding(content)

	// Already UTF-8
	if enc == "utf-8" || enc == "utf8" {
		return content, nil
	}

	e, err := htmlindex.Get(enc)
	if err != nil {
		// Unknown encoding, return as-is
		return content, nil
	}

	reader := transform.NewReader(bytes.NewReader(content), e.NewDecoder())
	return io.ReadAll(reader)
}
