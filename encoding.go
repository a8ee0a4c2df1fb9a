package readability

import (
	"fmt"
	"strings"

	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// minCharsetConfidence is the lowest chardet confidence we trust over the
// windows-1252 fallback of the HTML sniffing algorithm.
const minCharsetConfidence = 50

// decodeInput converts raw input into an UTF-8 string, using the
// configured encoding or guessing it when allowed.
func decodeInput(raw []byte, opts Options) (string, error) {
	var (
		enc  encoding.Encoding
		name string
	)

	switch {
	case opts.Encoding != "":
		e, err := htmlindex.Get(opts.Encoding)
		if err != nil {
			return "", fmt.Errorf("unknown encoding %q: %w", opts.Encoding, err)
		}
		enc, name = e, opts.Encoding
	case opts.GuessEncoding:
		enc, name = guessEncoding(raw)
	default:
		return strings.ToValidUTF8(string(raw), "�"), nil
	}

	opts.logf(nil, "decoding input as %s", name)
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode input as %s: %w", name, err)
	}
	return string(decoded), nil
}

// guessEncoding follows the HTML5 sniffing algorithm (BOM, then <meta>
// charset). When that only yields its windows-1252 fallback, a
// statistical detector gets a say.
func guessEncoding(raw []byte) (encoding.Encoding, string) {
	enc, name, certain := charset.DetermineEncoding(raw, "")
	if certain || name != "windows-1252" {
		return enc, name
	}

	result, err := chardet.NewHtmlDetector().DetectBest(raw)
	if err != nil || result.Confidence < minCharsetConfidence {
		return enc, name
	}

	detected, err := htmlindex.Get(result.Charset)
	if err != nil {
		return enc, name
	}
	return detected, result.Charset
}
