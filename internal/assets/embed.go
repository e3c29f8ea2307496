// Package assets provides the embedded maps and utilities for loading them.
package assets

import "embed"

// mapsFS embeds all map texts and the map catalog at build time.
//
//go:embed maps/*.txt maps/*.json
var mapsFS embed.FS

// FS returns the embedded filesystem containing map data.
func FS() embed.FS {
	return mapsFS
}
