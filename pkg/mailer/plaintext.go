package mailer

import (
	"bufio"
	"bytes"
	"fmt"
	htmlstd "html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
)

// plainText renders a parsed markdown document as a text/plain body.
// Markup is dropped, references and escapes are resolved, buttons are omitted.
func plainText(doc ast.Node, source []byte) string {
	var b strings.Builder
	writeBlocks(&b, doc, source)
	out := strings.TrimSpace(b.String())
	if out == "" {
		return ""
	}
	return out + "\n"
}

func writeBlocks(b *strings.Builder, parent ast.Node, source []byte) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		var block strings.Builder
		switch n := n.(type) {
		case *ast.HTMLBlock:
			continue
		case *ast.ThematicBreak:
			block.WriteString("---")
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				block.Write(seg.Value(source))
			}
		case *ast.Blockquote:
			var inner strings.Builder
			writeBlocks(&inner, n, source)
			prefixLines(&block, inner.String(), "> ", "> ")
		case *ast.List:
			num := n.Start
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				marker := "- "
				if n.IsOrdered() {
					marker = fmt.Sprintf("%d. ", num)
					num++
				}
				var inner strings.Builder
				writeBlocks(&inner, item, source)
				prefixLines(&block, inner.String(), marker, strings.Repeat(" ", len(marker)))
			}
		default:
			writeInline(&block, n, source)
		}

		s := strings.TrimRight(block.String(), " \n")
		if strings.TrimSpace(s) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s)
	}
}

func prefixLines(b *strings.Builder, s, first, rest string) {
	for i, l := range strings.Split(strings.TrimSpace(s), "\n") {
		p := rest
		if i == 0 {
			p = first
		}
		b.WriteString(strings.TrimRight(p+l, " "))
		b.WriteByte('\n')
	}
}

func writeInline(b *strings.Builder, parent ast.Node, source []byte) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ButtonNode, *ast.RawHTML:
		case *ast.Text:
			v := n.Segment.Value(source)
			if n.IsRaw() {
				b.Write(v)
			} else {
				b.WriteString(resolveText(v))
			}
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(source))
				}
			}
		case *ast.AutoLink:
			b.Write(n.Label(source))
		case *ast.Link:
			var label strings.Builder
			writeInline(&label, n, source)
			b.WriteString(label.String())
			if dest := string(n.Destination); dest != "" && dest != label.String() {
				b.WriteString(" <" + dest + ">")
			}
		default:
			writeInline(b, n, source)
		}
	}
}

// resolveText decodes backslash escapes and entity references in one pass,
// the same way the HTML renderer reads text segments.
func resolveText(v []byte) string {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	html.DefaultWriter.Write(w, v)
	_ = w.Flush()
	return htmlstd.UnescapeString(buf.String())
}
