package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/therippa/tesla-bitbar/pkg/owner"
)

// Unit selects the temperature display unit. The API always reports Celsius.
type Unit int

const (
	UnitCelsius Unit = iota
	UnitFahrenheit
)

// ParseUnit interprets the configured unit string. "F" (or "f") selects
// Fahrenheit; anything else falls back to Celsius.
func ParseUnit(s string) Unit {
	if strings.EqualFold(s, "F") {
		return UnitFahrenheit
	}
	return UnitCelsius
}

// ConvertTemp converts a Celsius reading into the display unit.
func ConvertTemp(celsius float64, unit Unit) float64 {
	if unit == UnitFahrenheit {
		return celsius*1.8 + 32
	}
	return celsius
}

// ChargeRate computes the instantaneous charging rate in kW from charger
// voltage, actual current, and phase count. Any factor reported as zero or
// missing yields 0 rather than a nonsense product.
func ChargeRate(voltage, current float64, phases int) float64 {
	if voltage == 0 || current == 0 || phases == 0 {
		return 0
	}
	return voltage * current * float64(phases) / 1000
}

// HumanizeDuration renders a delta as its non-zero components among weeks,
// days, hours, and minutes: "3 days and 2 hours", "1 week, 2 days and 5
// minutes". Components are pluralized only above one, zero components are
// omitted, and a zero delta yields "".
func HumanizeDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes <= 0 {
		return ""
	}
	units := []struct {
		name    string
		minutes int
	}{
		{"week", 7 * 24 * 60},
		{"day", 24 * 60},
		{"hour", 60},
		{"minute", 1},
	}
	var terms []string
	for _, u := range units {
		n := minutes / u.minutes
		minutes %= u.minutes
		if n == 0 {
			continue
		}
		term := fmt.Sprintf("%d %s", n, u.name)
		if n > 1 {
			term += "s"
		}
		terms = append(terms, term)
	}
	switch len(terms) {
	case 0:
		return ""
	case 1:
		return terms[0]
	default:
		return strings.Join(terms[:len(terms)-1], ", ") + " and " + terms[len(terms)-1]
	}
}

// ChargingSummary condenses a charge snapshot into one phrase. Active charging
// always wins and reports energy added and the instantaneous rate, with a
// humanized time-to-full when the API supplied one. Otherwise an unlatched
// port means "Unplugged", a latched port with a pending schedule means
// "Scheduled", and anything else passes the raw charging state through.
func ChargingSummary(cs owner.ChargeState) string {
	if cs.ChargingState == "Charging" {
		var phases int
		if cs.ChargerPhases != nil {
			phases = *cs.ChargerPhases
		}
		rate := ChargeRate(cs.ChargerVoltage, cs.ChargerActualCurrent, phases)
		summary := fmt.Sprintf("+%.1f kWh @ %.1f kW", cs.ChargeEnergyAdded, rate)
		if cs.TimeToFullCharge != nil {
			remaining := time.Duration(*cs.TimeToFullCharge * float64(time.Hour))
			if phrase := HumanizeDuration(remaining); phrase != "" {
				summary += fmt.Sprintf(" (%s)", phrase)
			}
		}
		return summary
	}
	if !cs.PortLatched() {
		return "Unplugged"
	}
	if cs.ScheduledChargingPending {
		return "Scheduled"
	}
	return cs.ChargingState
}

// LockSummary pairs the lock label with the complementary toggle action.
type LockSummary struct {
	Label       string
	ActionLabel string
	Command     string
}

// LockInfo maps the lock flag to its label and the opposite action.
func LockInfo(locked bool) LockSummary {
	if locked {
		return LockSummary{Label: "Locked", ActionLabel: "Unlock", Command: "door_unlock"}
	}
	return LockSummary{Label: "Unlocked", ActionLabel: "Lock", Command: "door_lock"}
}
