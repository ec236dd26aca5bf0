// Package status holds the shared account/record status vocabulary.
package status

const (
	Active   = "active"
	Disabled = "disabled"
)
