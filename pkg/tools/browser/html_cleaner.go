package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// CleanedHTML is page markup prepared for locator debugging: noise elements
// removed, targeting attributes kept, length capped.
type CleanedHTML struct {
	HTML           string `json:"html"`
	Length         int    `json:"length"`
	OriginalLength int    `json:"original_length"`
	Truncated      bool   `json:"truncated"`
}

// noiseElements are removed entirely, including their content.
var noiseElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

// voidElements never get a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// keptGlobalAttrs are preserved on every element because they are the ones
// locators target.
var keptGlobalAttrs = map[string]bool{
	"id":               true,
	"class":            true,
	"role":             true,
	"aria-label":       true,
	"aria-describedby": true,
}

// cleanHTML parses raw markup and re-renders it without noise elements,
// keeping only attributes useful for building selectors. Output is capped
// at maxLength characters of rendered markup.
func cleanHTML(rawHTML string, maxLength int) (*CleanedHTML, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	w := &cleanWriter{limit: maxLength}
	w.render(doc)

	return &CleanedHTML{
		HTML:           w.out.String(),
		Length:         w.out.Len(),
		OriginalLength: len(rawHTML),
		Truncated:      w.truncated,
	}, nil
}

// cleanWriter renders a parsed tree up to a length budget.
type cleanWriter struct {
	out       strings.Builder
	limit     int
	truncated bool
}

func (w *cleanWriter) render(n *html.Node) {
	if w.truncated {
		return
	}

	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		w.writeText(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if noiseElements[tag] {
			return
		}
		w.writeOpenTag(tag, n.Attr)
		w.renderChildren(n)
		if !voidElements[tag] && !w.truncated {
			w.write("</" + tag + ">")
		}
		return
	default:
		w.renderChildren(n)
	}
}

func (w *cleanWriter) renderChildren(n *html.Node) {
	for c := n.FirstChild; c != nil && !w.truncated; c = c.NextSibling {
		w.render(c)
	}
}

func (w *cleanWriter) writeOpenTag(tag string, attrs []html.Attribute) {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, attr := range attrs {
		if keepAttribute(tag, strings.ToLower(attr.Key)) {
			fmt.Fprintf(&b, " %s=%q", attr.Key, attr.Val)
		}
	}
	b.WriteString(">")
	w.write(b.String())
}

func (w *cleanWriter) writeText(text string) {
	text = strings.TrimSpace(text)
	if text != "" {
		w.write(html.EscapeString(text))
	}
}

func (w *cleanWriter) write(s string) {
	if w.truncated {
		return
	}
	if w.out.Len()+len(s) > w.limit {
		remaining := w.limit - w.out.Len()
		if remaining > 0 {
			w.out.WriteString(s[:remaining])
		}
		w.out.WriteString("\n... [truncated]")
		w.truncated = true
		return
	}
	w.out.WriteString(s)
}

// keepAttribute reports whether an attribute survives cleaning. data-*
// attributes are kept because they are common selector targets.
func keepAttribute(tag, name string) bool {
	if keptGlobalAttrs[name] || strings.HasPrefix(name, "data-") {
		return true
	}
	switch tag {
	case "a":
		return name == "href" || name == "target"
	case "img":
		return name == "src" || name == "alt"
	case "input", "textarea", "select":
		return name == "name" || name == "type" || name == "placeholder" || name == "value"
	case "button":
		return name == "type" || name == "name"
	case "form":
		return name == "action" || name == "method"
	}
	return false
}
