// Package render serializes document element trees to HTML.
//
// Rendered elements carry a data-nid attribute with their node id so the
// browser client can address patch targets and report event targets.
package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/flashbar-dev/flashbar/pkg/dom"
)

// Renderer writes element trees as HTML.
type Renderer struct {
	// IncludeNodeIDs embeds data-nid attributes on attached elements.
	// Page rendering needs them; detached fragments render without.
	IncludeNodeIDs bool
}

// NewRenderer creates a renderer that embeds node ids.
func NewRenderer() *Renderer {
	return &Renderer{IncludeNodeIDs: true}
}

// RenderToString renders an element tree to an HTML string.
func (r *Renderer) RenderToString(el *dom.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, el); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams an element tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, el *dom.Element) error {
	if el == nil {
		return nil
	}
	switch el.Kind() {
	case dom.KindText:
		_, err := io.WriteString(w, escapeHTML(el.Text()))
		return err
	case dom.KindElement:
		return r.renderElement(w, el)
	default:
		return fmt.Errorf("render: unknown node kind %d", el.Kind())
	}
}

func (r *Renderer) renderElement(w io.Writer, el *dom.Element) error {
	tag := el.Tag()
	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}

	attrs := el.Attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, k, escapeAttr(attrs[k])); err != nil {
			return err
		}
	}
	if classes := el.ClassAttr(); classes != "" {
		if _, err := fmt.Fprintf(w, ` class="%s"`, escapeAttr(classes)); err != nil {
			return err
		}
	}
	if r.IncludeNodeIDs && el.NodeID() != "" {
		if _, err := fmt.Fprintf(w, ` data-nid="%s"`, el.NodeID()); err != nil {
			return err
		}
	}

	if isVoidElement(tag) {
		_, err := io.WriteString(w, ">")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	for _, child := range el.Children() {
		if err := r.RenderToWriter(w, child); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// voidElements are HTML elements that never have children or a closing
// tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

func isVoidElement(tag string) bool { return voidElements[tag] }
