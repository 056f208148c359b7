package frontmatter

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrMissingFrontmatter is returned by MustParse when the document does
// not open with a frontmatter block.
var ErrMissingFrontmatter = errors.New("missing frontmatter")

var (
	delimLF   = []byte("---\n")
	delimCRLF = []byte("---\r\n")
)

// Parse extracts YAML frontmatter and body from r. Frontmatter is
// optional: a document without it yields a zero matter value and the
// full content as body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is Parse for documents where frontmatter is required.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rest, ok := cutOpening(content)
	if !ok {
		if required {
			return nil, ErrMissingFrontmatter
		}
		return content, nil
	}

	head, body, ok := splitClosing(rest)
	if !ok {
		if required {
			return nil, errors.New("missing closing frontmatter delimiter")
		}
		return content, nil
	}

	if err := yaml.Unmarshal(head, matter); err != nil {
		return nil, err
	}
	return body, nil
}

// cutOpening strips a leading "---" line, reporting whether one was
// present.
func cutOpening(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, delimLF) {
		return content[len(delimLF):], true
	}
	if bytes.HasPrefix(content, delimCRLF) {
		return content[len(delimCRLF):], true
	}
	return content, false
}

// splitClosing splits at the closing "---" line and trims the line
// break the split leaves at the head of the body.
func splitClosing(rest []byte) (head, body []byte, ok bool) {
	head, body, ok = bytes.Cut(rest, []byte("\n---"))
	if !ok {
		head, body, ok = bytes.Cut(rest, []byte("\r\n---"))
	}
	if !ok {
		return nil, nil, false
	}
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return head, body, true
}
