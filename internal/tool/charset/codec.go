package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is used whenever detection is impossible or untrustworthy.
const DefaultEncoding = "utf-8"

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// lookup resolves an encoding label. HTML labels are tried first since they
// cover the common aliases (cp1251, latin1...), then IANA names.
func lookup(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, &UnsupportedEncodingError{Name: name}
	}
	return enc, nil
}

// Supported reports whether name can be used with Decode and Encode.
func Supported(name string) bool {
	if name == "" {
		return false
	}
	if isUTF8(name) {
		return true
	}
	_, err := lookup(name)
	return err == nil
}

// Decode converts data in the named encoding to a UTF-8 string.
func Decode(data []byte, name string) (string, error) {
	if isUTF8(name) {
		if !utf8.Valid(data) {
			return "", &DecodeError{Encoding: name, Cause: ErrInvalidBytes}
		}
		return string(data), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Encoding: name, Cause: err}
	}
	// Table decoders map undefined bytes to U+FFFD instead of failing.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", &DecodeError{Encoding: name, Cause: ErrInvalidBytes}
	}
	return string(out), nil
}

// Encode converts text to bytes in the named encoding. Characters the
// encoding cannot represent are an error, never silently replaced.
func Encode(text string, name string) ([]byte, error) {
	if isUTF8(name) {
		return []byte(text), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, &EncodeError{Encoding: name, Cause: err}
	}
	return out, nil
}

// Canonical resolves an encoding label to its canonical lower-case name,
// so aliases such as cp1251 and windows-1251 compare equal. Unknown labels
// return an UnsupportedEncodingError.
func Canonical(name string) (string, error) {
	if isUTF8(name) {
		return DefaultEncoding, nil
	}
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	if canon, err := htmlindex.Name(enc); err == nil {
		return canon, nil
	}
	return strings.ToLower(strings.TrimSpace(name)), nil
}
