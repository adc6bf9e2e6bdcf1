// Package charset decodes header text. QIP wrote UTF-8 in current builds but
// older installs left single-byte code-page names in the header, so a legacy
// fallback is tried when the bytes are not valid UTF-8.
package charset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// None disables the legacy fallback.
const None = "none"

// Default is the fallback used when none is configured.
const Default = "windows-1251"

// ErrInvalid indicates text that is neither UTF-8 nor decodable with the
// configured fallback.
var ErrInvalid = errors.New("charset: invalid text")

var fallbacks = map[string]*charmap.Charmap{
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
	"cp866":        charmap.CodePage866,
	"iso-8859-5":   charmap.ISO8859_5,
}

// Decoder turns header bytes into a string.
type Decoder struct {
	name     string
	fallback encoding.Encoding
}

// New returns a decoder for the named fallback. An empty name selects
// Default; None disables the fallback.
func New(name string) (*Decoder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		name = Default
	case None:
		return &Decoder{name: None}, nil
	}
	cm, ok := fallbacks[name]
	if !ok {
		return nil, fmt.Errorf("charset: unsupported fallback %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return &Decoder{name: name, fallback: cm}, nil
}

// Name returns the configured fallback name.
func (d *Decoder) Name() string { return d.name }

// Decode returns b as UTF-8 text, falling back to the legacy code page.
func (d *Decoder) Decode(b []byte) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	if d == nil || d.fallback == nil {
		return "", fmt.Errorf("%d bytes: %w", len(b), ErrInvalid)
	}
	out, err := d.fallback.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%s: %w", d.name, errors.Join(ErrInvalid, err))
	}
	return string(out), nil
}

// Names lists the supported fallback names.
func Names() []string {
	names := make([]string, 0, len(fallbacks)+1)
	for name := range fallbacks {
		names = append(names, name)
	}
	names = append(names, None)
	sort.Strings(names)
	return names
}
