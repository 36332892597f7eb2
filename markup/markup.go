package markup

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/beevik/etree"

	apperrors "github.com/kbukum/xesmeta/errors"
)

var tagNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// AddTagValue renders <name>value</name> followed by a newline.
// The value is escaped so that Parse returns it byte for byte.
func AddTagValue(name, value string) (string, error) {
	if !tagNamePattern.MatchString(name) {
		return "", apperrors.Serialization(name, fmt.Errorf("invalid tag name %q", name))
	}
	if err := checkChars(value); err != nil {
		return "", apperrors.Serialization(name, err)
	}

	doc := etree.NewDocument()
	// \r is written as &#xD; and an empty value as <name></name>.
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalEndTags = true
	doc.CreateElement(name).SetText(value)

	out, err := doc.WriteToString()
	if err != nil {
		return "", apperrors.Serialization(name, err)
	}
	return out + "\n", nil
}

// checkChars rejects input that is not UTF-8 or holds characters outside
// the XML 1.0 Char production. etree would otherwise substitute U+FFFD.
func checkChars(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("value is not valid UTF-8")
	}
	for i, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("character %U at offset %d is not allowed in XML", r, i)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
