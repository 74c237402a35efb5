package common

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/miosa/osa-vscroll/style"
)

// KeyHelp renders a one-line help string for the given bindings:
//
//	[keys] description  ·  [keys] description
//
// Disabled bindings are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		keys := h.Key
		if keys == "" {
			keys = strings.Join(b.Keys(), "/")
		}
		parts = append(parts, style.HelpKey.Render("["+keys+"]")+style.HelpDesc.Render(" "+h.Desc))
	}
	return strings.Join(parts, style.HelpSeparator.Render("  ·  "))
}
