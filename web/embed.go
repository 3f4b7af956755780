package web

import "embed"

// DataFS embeds the content collections served by the API: topics, tips
// and places of interest.
//
//go:embed data/*.json
var DataFS embed.FS
