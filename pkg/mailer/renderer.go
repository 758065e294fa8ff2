package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Rendered is the output of a template render.
type Rendered struct {
	Subject string // Executed frontmatter subject; empty if the template has none
	HTML    string
	Text    string // Plain-text rendering of the markdown; buttons are dropped
	Meta    Frontmatter
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTemplateDir sets the directory templates are read from. Default ".".
func WithTemplateDir(dir string) RendererOption {
	return func(r *Renderer) { r.templateDir = dir }
}

// WithLayoutDir sets the directory layouts are read from. Default "layouts".
func WithLayoutDir(dir string) RendererOption {
	return func(r *Renderer) { r.layoutDir = dir }
}

// Renderer turns markdown templates into HTML emails.
// Parsed templates and layouts are cached; rendering is safe for concurrent use.
type Renderer struct {
	fs          fs.FS
	md          goldmark.Markdown
	templateDir string
	layoutDir   string

	mu        sync.RWMutex
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
}

type parsedTemplate struct {
	meta    Frontmatter
	body    *texttemplate.Template
	subject *texttemplate.Template
}

// NewRenderer creates a Renderer reading from fsys.
func NewRenderer(fsys fs.FS, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fs:          fsys,
		templateDir: ".",
		layoutDir:   "layouts",
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, ButtonExtension()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes the named template with data and wraps it in a layout.
// The template's frontmatter Layout wins over the layout argument; if both are
// empty the markdown HTML is returned without a layout.
func (r *Renderer) Render(layout, name string, data any) (*Rendered, error) {
	tpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := tpl.body.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var subject bytes.Buffer
	if tpl.subject != nil {
		if err := tpl.subject.Execute(&subject, data); err != nil {
			return nil, fmt.Errorf("%w: %s subject: %v", ErrRenderFailed, name, err)
		}
	}

	source := md.Bytes()
	doc := r.md.Parser().Parse(text.NewReader(source))

	var content bytes.Buffer
	if err := r.md.Renderer().Render(&content, source, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: markdown: %v", ErrRenderFailed, name, err)
	}

	out := &Rendered{
		Subject: subject.String(),
		HTML:    content.String(),
		Text:    plainText(doc, source),
		Meta:    tpl.meta,
	}

	if tpl.meta.Layout != "" {
		layout = tpl.meta.Layout
	}
	if layout == "" {
		return out, nil
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	if err := lt.Execute(&page, map[string]any{
		"Content": template.HTML(content.String()), //nolint:gosec // produced by goldmark from escaped input
		"Subject": out.Subject,
		"Meta":    tpl.meta.Extra,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}
	out.HTML = page.String()

	return out, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	tpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	body, err := texttemplate.New(name).Option("missingkey=error").Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	tpl = &parsedTemplate{meta: parsed.Meta, body: body}
	if parsed.Meta.Subject != "" {
		tpl.subject, err = texttemplate.New(name + ":subject").Option("missingkey=error").Parse(parsed.Meta.Subject)
		if err != nil {
			return nil, fmt.Errorf("%w: %s subject: %v", ErrRenderFailed, name, err)
		}
	}

	r.templates[name] = tpl
	return tpl, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if lt, ok := r.layouts[name]; ok {
		return lt, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	lt, err = template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = lt
	return lt, nil
}
