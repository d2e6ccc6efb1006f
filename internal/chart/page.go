package chart

import (
	_ "embed"
)

//go:embed assets/chart.html
var pageHTML []byte

// PageHTML returns the live chart page served at /chart.
func PageHTML() []byte {
	return pageHTML
}
