package web

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed static
	embeddedStaticFiles embed.FS

	//go:embed templates
	embeddedTemplates embed.FS
)

// templatesFS returns the embedded templates rooted at the templates directory.
func templatesFS() http.FileSystem {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}

	return http.FS(sub)
}
