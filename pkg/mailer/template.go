package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the recognised template metadata keys.
// Extra keys are kept in Extra and exposed to the layout.
type Frontmatter struct {
	Subject string         `yaml:"Subject"`
	Layout  string         `yaml:"Layout"`
	Extra   map[string]any `yaml:",inline"`
}

// Template is a parsed template file.
type Template struct {
	Meta Frontmatter
	Body string
}

var fence = []byte("---")

// ParseTemplate splits content into YAML frontmatter and markdown body.
// Content without a leading "---" line is treated as body only.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(content, fence) {
		return &Template{Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(content[len(fence):], "\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: nothing after opening delimiter", ErrInvalidFrontmatter)
	}

	head, body, found := cutFence(rest)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	var meta Frontmatter
	if len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Meta: meta, Body: string(body)}, nil
}

// cutFence splits at the first line consisting of "---".
// The newline after the closing fence is consumed.
func cutFence(b []byte) (head, body []byte, found bool) {
	if bytes.HasPrefix(b, fence) {
		return nil, trimOneNewline(b[len(fence):]), true
	}
	idx := bytes.Index(b, append([]byte("\n"), fence...))
	if idx < 0 {
		return nil, nil, false
	}
	return b[:idx+1], trimOneNewline(b[idx+1+len(fence):]), true
}

func trimOneNewline(b []byte) []byte {
	if len(b) > 0 && b[0] == '\n' {
		return b[1:]
	}
	return b
}
