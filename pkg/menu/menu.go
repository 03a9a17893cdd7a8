// Package menu renders aggregated vehicle status as BitBar/xbar menu lines.
// The line syntax is owned by the menu host; this package only produces the
// subset tesla-bitbar needs: labels, separators, clickable re-invocation
// actions, and href lines.
package menu

import (
	_ "embed" // menu bar icon, shipped inside the binary
	"fmt"
	"io"
	"strings"
)

//go:embed icon_b64.txt
var iconB64 string

// Printer emits menu lines for one invocation. The prefix is set to "--" while
// rendering a vehicle's submenu block and cleared for top-level lines.
type Printer struct {
	w      io.Writer
	exe    string
	color  string
	prefix string
}

// NewPrinter writes lines to w. exe is the path the host should re-invoke for
// clickable actions; color is the dark-mode-dependent text color token.
func NewPrinter(w io.Writer, exe, color string) *Printer {
	return &Printer{w: w, exe: exe, color: color}
}

// SetPrefix enables or disables the submenu prefix for subsequent lines.
func (p *Printer) SetPrefix(submenu bool) {
	if submenu {
		p.prefix = "--"
	} else {
		p.prefix = ""
	}
}

// Header prints the menu bar icon line followed by a separator.
func (p *Printer) Header() {
	fmt.Fprintf(p.w, "|image=%s\n", strings.TrimSpace(iconB64))
	fmt.Fprintln(p.w, "---")
}

// Title prints a top-level label regardless of the current prefix. Used for
// vehicle names when the account has more than one vehicle.
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.w, text)
}

// Label prints a colored text line.
func (p *Printer) Label(format string, a ...interface{}) {
	fmt.Fprintf(p.w, "%s%s| color=%s\n", p.prefix, fmt.Sprintf(format, a...), p.color)
}

// Plain prints a text line with no color token.
func (p *Printer) Plain(format string, a ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", p.prefix, fmt.Sprintf(format, a...))
}

// Separator prints a menu separator at the current level.
func (p *Printer) Separator() {
	fmt.Fprintf(p.w, "%s---\n", p.prefix)
}

// Action prints a clickable line that re-invokes the plugin with a vehicle
// index and command name. The host refreshes the menu afterwards and does not
// open a terminal.
func (p *Printer) Action(label string, index int, command string) {
	fmt.Fprintf(p.w, "%s%s | refresh=true terminal=false bash=%q param1=%d param2=%s color=%s\n",
		p.prefix, label, p.exe, index, command, p.color)
}

// Link prints a clickable line that opens a URL.
func (p *Printer) Link(label, href string) {
	fmt.Fprintf(p.w, "%s%s | href=%s color=%s\n", p.prefix, label, href, p.color)
}

// LoginPrompt prints the re-login affordance: clicking runs the plugin's
// login flow in a terminal so the user can type credentials.
func (p *Printer) LoginPrompt() {
	fmt.Fprintf(p.w, "Click to login | refresh=true terminal=true bash=%q param1=login\n", p.exe)
}

// Error prints a single user-visible error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s | color=red\n", msg)
}
