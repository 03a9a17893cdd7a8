package menu

import (
	"fmt"
	"io"

	"github.com/therippa/tesla-bitbar/pkg/status"
)

// Options carries the display configuration threaded from startup. Nothing in
// this package reads ambient state.
type Options struct {
	Exe   string
	Color string
	Emoji bool
	Unit  status.Unit
	// Names overrides vehicle display names, keyed by the API display name.
	Names map[string]string
}

type labelSet struct {
	battery, charging, limit, inside, outside, state, location string
}

var textLabels = labelSet{
	battery:  "Battery Level",
	charging: "Charging",
	limit:    "Charge Limit",
	inside:   "Inside Temp",
	outside:  "Outside Temp",
	state:    "State",
	location: "Location",
}

var emojiLabels = labelSet{
	battery:  "🔋 Battery",
	charging: "⚡️ Charging",
	limit:    "🎯 Charge Limit",
	inside:   "🌡 Inside",
	outside:  "🌡 Outside",
	state:    "💤 State",
	location: "📍 Location",
}

func (o Options) labels() labelSet {
	if o.Emoji {
		return emojiLabels
	}
	return textLabels
}

func (o Options) name(apiName string) string {
	if mapped, ok := o.Names[apiName]; ok {
		return mapped
	}
	return apiName
}

// Render prints the full status menu: header, then one block per vehicle. With
// more than one vehicle each block becomes a named submenu.
func Render(w io.Writer, opts Options, statuses []status.VehicleStatus) {
	p := NewPrinter(w, opts.Exe, opts.Color)
	p.Header()

	submenu := len(statuses) > 1
	for i, st := range statuses {
		if submenu {
			p.SetPrefix(false)
			p.Title(opts.name(st.Vehicle.DisplayName))
		}
		p.SetPrefix(submenu)
		if st.Reduced {
			renderReduced(p, opts, i, st)
		} else {
			renderFull(p, opts, i, st)
		}
	}
}

// RenderLoginPrompt prints the header and the re-login affordance, used when
// no usable token exists.
func RenderLoginPrompt(w io.Writer, opts Options) {
	p := NewPrinter(w, opts.Exe, opts.Color)
	p.Header()
	p.LoginPrompt()
}

// RenderError prints the header and a single error line. Raw transport detail
// stays in the logs.
func RenderError(w io.Writer, opts Options, msg string) {
	p := NewPrinter(w, opts.Exe, opts.Color)
	p.Header()
	p.Error(msg)
}

// renderReduced emits the block for an asleep or unknown vehicle: the state
// label plus the two actions that make sense without telemetry.
func renderReduced(p *Printer, opts Options, index int, st status.VehicleStatus) {
	l := opts.labels()
	p.Label("%s: %s", l.state, st.Vehicle.State)
	p.Action("Wakeup", index, "wakeup")
	p.Action("Start HVAC", index, "auto_conditioning_start")
}

func renderFull(p *Printer, opts Options, index int, st status.VehicleStatus) {
	l := opts.labels()

	if level, ok := batteryLine(st); ok {
		p.Label("%s: %s", l.battery, level)
	}
	if charging := st.Charging(); charging.Valid {
		p.Label("%s: %s", l.charging, charging.Value)
	}
	if limit := st.ChargeLimit(); limit.Valid {
		p.Label("%s: %d%%", l.limit, limit.Value)
		p.Action("Charge Standard", index, "charge_standard")
		p.Action("Charge Max Range", index, "charge_max_range")
	}
	p.Separator()

	p.tempLine(l.inside, st.InsideTemp(opts.Unit))
	p.tempLine(l.outside, st.OutsideTemp(opts.Unit))
	p.Separator()

	if locked := st.Locked(); locked.Valid {
		info := status.LockInfo(locked.Value)
		p.Label("%s", info.Label)
		p.Action(info.ActionLabel, index, info.Command)
	}
	if loc := st.Location(); loc.Valid {
		p.Link(l.location, fmt.Sprintf("https://maps.google.com/?q=%f,%f", loc.Value.Lat, loc.Value.Long))
	}
	if st.ClimateOn() {
		p.Action("Stop HVAC", index, "auto_conditioning_stop")
	} else {
		p.Action("Start HVAC", index, "auto_conditioning_start")
	}
}

func batteryLine(st status.VehicleStatus) (string, bool) {
	level := st.BatteryLevel()
	if !level.Valid {
		return "", false
	}
	line := fmt.Sprintf("%d%%", level.Value)
	if r := st.BatteryRange(); r.Valid && r.Value > 0 {
		line += fmt.Sprintf(" (%.0f mi)", r.Value)
	}
	return line, true
}

// tempLine prints a temperature or the unavailable placeholder; either reading
// may be absent without affecting the other.
func (p *Printer) tempLine(label string, t status.Field[float64]) {
	if t.Valid {
		p.Label("%s: %.1f°", label, t.Value)
	} else {
		p.Plain("%s: Unavailable", label)
	}
}
