// Package mapdata provides embedded maps and the display palette.
package mapdata

import "embed"

// dataFS embeds the map library and palette at build time.
//
//go:embed maps/*.json palette.json
var dataFS embed.FS
