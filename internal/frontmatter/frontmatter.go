// Package frontmatter separates a YAML front-matter block from a Markdown
// body and decodes it into typed structs.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front-matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front-matter start delimiter found but closing delimiter is missing")

// ErrInvalidDate is returned when a date value matches no supported layout.
var ErrInvalidDate = errors.New("invalid date")

var utf8BOM = []byte("\xef\xbb\xbf")

// Split separates `---` delimited front-matter from the body. A leading
// UTF-8 byte order mark is dropped first. When the document has no
// front-matter, had is false and body is the whole input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}
	if bytes.Equal(content[start:], []byte("---")) {
		return []byte{}, []byte{}, true, nil
	}

	closeSeq := []byte(nl + "---")
	idx := bytes.Index(content[start:], closeSeq)
	for idx >= 0 {
		end := start + idx + len(closeSeq)
		rest := content[end:]
		switch {
		case len(rest) == 0:
			return content[start : start+idx+len(nl)], []byte{}, true, nil
		case bytes.HasPrefix(rest, []byte(nl)):
			return content[start : start+idx+len(nl)], rest[len(nl):], true, nil
		}
		next := bytes.Index(content[end:], closeSeq)
		if next < 0 {
			break
		}
		idx = end - start + next
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// Decode unmarshals YAML front-matter into dst. Unknown keys are ignored.
func Decode(fm []byte, dst any) error {
	if len(bytes.TrimSpace(fm)) == 0 {
		return nil
	}
	return yaml.Unmarshal(fm, dst)
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Date is a front-matter date. The zero value means the key was absent or
// empty; an unparsable value fails decoding.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate tries the supported layouts in order. Dates without a zone are UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, value)
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	if node.Tag == "!!null" || node.Value == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	d.Time = t
	return nil
}
