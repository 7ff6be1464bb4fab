// Package assets embeds the browser client (script and stylesheet) and
// publishes it to object storage for CDN serving.
package assets

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed client
var clientFS embed.FS

// Canonical asset names.
const (
	ScriptName = "flashbar.js"
	StyleName  = "flashbar.css"
)

// FS returns the embedded client files, rooted at the asset names.
func FS() fs.FS {
	sub, err := fs.Sub(clientFS, "client")
	if err != nil {
		panic(err)
	}
	return sub
}

// Script returns the client script bytes.
func Script() []byte {
	data, err := clientFS.ReadFile("client/" + ScriptName)
	if err != nil {
		panic(err)
	}
	return data
}

// Style returns the client stylesheet bytes.
func Style() []byte {
	data, err := clientFS.ReadFile("client/" + StyleName)
	if err != nil {
		panic(err)
	}
	return data
}

// Handler serves the embedded client files. Mount it under the asset
// path prefix, e.g. r.Mount("/assets", http.StripPrefix("/assets",
// assets.Handler())).
func Handler() http.Handler {
	return http.FileServer(http.FS(FS()))
}
