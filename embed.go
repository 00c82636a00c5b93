package captiond

import (
	"embed"
	"io/fs"
)

//go:embed web/*
var webFiles embed.FS

// WebFS returns the embedded demo UI rooted at web/.
func WebFS() fs.FS {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
