// Package charset decodes source files to UTF-8 and encodes rewritten
// content back to the encoding it was read with.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names used as defaults.
const (
	UTF8 = "utf-8"
	GBK  = "gbk"
)

var (
	// ErrUnknownEncoding is returned for an encoding label that is not recognized.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrUndecodable is returned when no candidate encoding decodes the input losslessly.
	ErrUndecodable = errors.New("content cannot be decoded")
)

// Codec is a named text encoding.
type Codec struct {
	// Name is the canonical encoding name.
	Name string

	enc encoding.Encoding
}

// Lookup resolves an encoding label such as "utf-8", "GBK" or "gb2312".
func Lookup(label string) (Codec, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "utf8", UTF8:
		return Codec{Name: UTF8, enc: unicode.UTF8}, nil
	case GBK, "cp936", "gb2312":
		return Codec{Name: GBK, enc: simplifiedchinese.GBK}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return Codec{Name: name, enc: enc}, nil
}

// Valid reports whether label names a supported encoding.
func Valid(label string) bool {
	_, err := Lookup(label)
	return err == nil
}

// IsUTF16 reports whether the codec is one of the UTF-16 variants.
func (c Codec) IsUTF16() bool {
	return strings.HasPrefix(c.Name, "utf-16")
}

// Decode converts data to a UTF-8 string. Decoding fails unless it is
// lossless, meaning the result encodes back to exactly data.
func (c Codec) Decode(data []byte) (string, error) {
	if c.Name == UTF8 {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w as %s", ErrUndecodable, c.Name)
		}
		return string(data), nil
	}

	decoded, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w as %s: %w", ErrUndecodable, c.Name, err)
	}

	roundTrip, err := c.enc.NewEncoder().Bytes(decoded)
	if err != nil || !bytes.Equal(roundTrip, data) {
		return "", fmt.Errorf("%w as %s", ErrUndecodable, c.Name)
	}

	return string(decoded), nil
}

// Encode converts a UTF-8 string to the codec's encoding.
func (c Codec) Encode(text string) ([]byte, error) {
	if c.Name == UTF8 {
		return []byte(text), nil
	}

	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", c.Name, err)
	}
	return out, nil
}

// Decoder tries a primary encoding and then a fallback.
type Decoder struct {
	Primary  Codec
	Fallback *Codec
}

// NewDecoder builds a Decoder from encoding labels. An empty fallback, or
// one equal to the primary, disables the fallback.
func NewDecoder(primary, fallback string) (*Decoder, error) {
	p, err := Lookup(primary)
	if err != nil {
		return nil, err
	}

	d := &Decoder{Primary: p}
	if fallback == "" {
		return d, nil
	}

	f, err := Lookup(fallback)
	if err != nil {
		return nil, err
	}
	if f.Name != p.Name {
		d.Fallback = &f
	}
	return d, nil
}

// Decode decodes data with the primary encoding, retrying with the
// fallback if that fails. It returns the codec that succeeded so the
// caller can write the content back in the same encoding.
func (d *Decoder) Decode(data []byte) (string, Codec, error) {
	text, err := d.Primary.Decode(data)
	if err == nil {
		return text, d.Primary, nil
	}
	if d.Fallback == nil {
		return "", Codec{}, err
	}

	text, fallbackErr := d.Fallback.Decode(data)
	if fallbackErr != nil {
		return "", Codec{}, fmt.Errorf("%w; fallback: %w", err, fallbackErr)
	}
	return text, *d.Fallback, nil
}
