// Package web embeds the browser form served by the relay.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Assets returns the form files rooted at the static directory.
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// File returns the content of one embedded asset.
func File(name string) ([]byte, error) {
	return fs.ReadFile(Assets(), name)
}
