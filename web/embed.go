// Package web holds the upload UI served at the site root.
package web

import "embed"

//go:embed index.html app.js styles.css
var Assets embed.FS
