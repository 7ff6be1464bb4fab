package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flashbar-dev/flashbar/pkg/dom"
)

func TestRenderDetachedFragment(t *testing.T) {
	r := &Renderer{}

	tests := []struct {
		name string
		el   *dom.Element
		want string
	}{
		{
			name: "element with class and text",
			el:   dom.Div(dom.Class("flash-message", "invisible"), dom.Span(dom.Class("flash-text"), "hi")),
			want: `<div class="flash-message invisible"><span class="flash-text">hi</span></div>`,
		},
		{
			name: "attributes sorted",
			el:   dom.A(dom.Href("/x"), dom.Data("level", "error")),
			want: `<a data-level="error" href="/x"></a>`,
		},
		{
			name: "text escaped",
			el:   dom.Span(`<b>&"bold"</b>`),
			want: `<span>&lt;b&gt;&amp;&quot;bold&quot;&lt;/b&gt;</span>`,
		},
		{
			name: "attribute escaped",
			el:   dom.A(dom.Href(`/q?a=1&b="2"`)),
			want: `<a href="/q?a=1&amp;b=&quot;2&quot;"></a>`,
		},
		{
			name: "void element",
			el:   dom.CustomElement("br"),
			want: `<br>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.el)
			if err != nil {
				t.Fatalf("RenderToString: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestRenderAttachedIncludesNodeIDs(t *testing.T) {
	doc := dom.NewDocument()
	box := dom.Div(dom.ID("msg"), dom.Class("flash-message"))
	doc.Root().AppendChild(box)

	got, err := NewRenderer().RenderToString(box)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `data-nid="`+box.NodeID()+`"`) {
		t.Errorf("missing node id: %s", got)
	}
	if !strings.Contains(got, `id="msg"`) {
		t.Errorf("missing id attribute: %s", got)
	}
}

func TestRenderNil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&Renderer{}).RenderToWriter(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("nil rendered %q", buf.String())
	}
}

func TestRenderPage(t *testing.T) {
	doc := dom.NewDocument()
	doc.Root().AppendChild(dom.Div(dom.ID("flash")))

	var buf bytes.Buffer
	err := NewRenderer().RenderPage(&buf, PageData{
		Title:       "Messages <demo>",
		Body:        doc.Root(),
		StyleSheets: []string{"/assets/flashbar.css"},
		Scripts:     []string{"/assets/flashbar.js"},
		WSPath:      "/ws",
		SessionID:   "sess-1",
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Messages &lt;demo&gt;</title>",
		`<link rel="stylesheet" href="/assets/flashbar.css">`,
		`<script src="/assets/flashbar.js" defer></script>`,
		`<meta name="flashbar-ws" content="/ws">`,
		`<meta name="flashbar-session" content="sess-1">`,
		`id="flash"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
