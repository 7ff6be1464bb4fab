package render

import (
	"fmt"
	"io"

	"github.com/flashbar-dev/flashbar/pkg/dom"
)

// PageData describes a full HTML page wrapping a rendered document body.
type PageData struct {
	Title       string
	Lang        string
	Body        *dom.Element
	StyleSheets []string
	Scripts     []string
	// WSPath is the websocket endpoint the client script connects to.
	WSPath string
	// SessionID is handed to the client for session resumption.
	SessionID string
}

// RenderPage writes a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	if page.WSPath != "" {
		if _, err := fmt.Fprintf(w, "<meta name=\"flashbar-ws\" content=\"%s\">\n", escapeAttr(page.WSPath)); err != nil {
			return err
		}
	}
	if page.SessionID != "" {
		if _, err := fmt.Fprintf(w, "<meta name=\"flashbar-session\" content=\"%s\">\n", escapeAttr(page.SessionID)); err != nil {
			return err
		}
	}
	for _, css := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, "<link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(css)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n"); err != nil {
		return err
	}

	if page.Body != nil {
		if err := r.RenderToWriter(w, page.Body); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w, "<body></body>\n"); err != nil {
			return err
		}
	}

	for _, src := range page.Scripts {
		if _, err := fmt.Fprintf(w, "<script src=\"%s\" defer></script>\n", escapeAttr(src)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</html>\n")
	return err
}
