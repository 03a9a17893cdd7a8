package status_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/therippa/tesla-bitbar/pkg/owner"
	"github.com/therippa/tesla-bitbar/pkg/status"
)

func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }

var _ = Describe("ConvertTemp", func() {
	It("converts freezing point to Fahrenheit", func() {
		Expect(status.ConvertTemp(0, status.UnitFahrenheit)).To(Equal(32.0))
	})
	It("converts boiling point to Fahrenheit", func() {
		Expect(status.ConvertTemp(100, status.UnitFahrenheit)).To(BeNumerically("~", 212.0, 1e-9))
	})
	It("passes Celsius through unchanged", func() {
		Expect(status.ConvertTemp(21.5, status.UnitCelsius)).To(Equal(21.5))
		Expect(status.ConvertTemp(-10, status.UnitCelsius)).To(Equal(-10.0))
	})
})

var _ = Describe("ParseUnit", func() {
	It("selects Fahrenheit for F in either case", func() {
		Expect(status.ParseUnit("F")).To(Equal(status.UnitFahrenheit))
		Expect(status.ParseUnit("f")).To(Equal(status.UnitFahrenheit))
	})
	It("falls back to Celsius for anything else", func() {
		Expect(status.ParseUnit("C")).To(Equal(status.UnitCelsius))
		Expect(status.ParseUnit("kelvin")).To(Equal(status.UnitCelsius))
		Expect(status.ParseUnit("")).To(Equal(status.UnitCelsius))
	})
})

var _ = Describe("ChargeRate", func() {
	It("computes kW from voltage, current, and phases", func() {
		Expect(status.ChargeRate(240, 40, 1)).To(BeNumerically("~", 9.6, 1e-9))
		Expect(status.ChargeRate(230, 16, 3)).To(BeNumerically("~", 11.04, 1e-9))
	})
	It("yields zero when any factor is missing", func() {
		Expect(status.ChargeRate(0, 40, 1)).To(BeZero())
		Expect(status.ChargeRate(240, 0, 1)).To(BeZero())
		Expect(status.ChargeRate(240, 40, 0)).To(BeZero())
	})
})

var _ = Describe("HumanizeDuration", func() {
	It("joins multiple components with and before the last", func() {
		Expect(status.HumanizeDuration(3*24*time.Hour + 2*time.Hour)).To(Equal("3 days and 2 hours"))
		Expect(status.HumanizeDuration(8*24*time.Hour + 2*24*time.Hour + 5*time.Minute)).
			To(Equal("1 week, 3 days and 5 minutes"))
	})
	It("keeps a single component singular", func() {
		Expect(status.HumanizeDuration(time.Hour)).To(Equal("1 hour"))
		Expect(status.HumanizeDuration(time.Minute)).To(Equal("1 minute"))
	})
	It("omits zero components entirely", func() {
		Expect(status.HumanizeDuration(25 * time.Hour)).To(Equal("1 day and 1 hour"))
	})
	It("yields the empty string for a zero delta", func() {
		Expect(status.HumanizeDuration(0)).To(Equal(""))
	})
})

var _ = Describe("ChargingSummary", func() {
	charging := owner.ChargeState{
		ChargingState:        "Charging",
		ChargerVoltage:       240,
		ChargerActualCurrent: 40,
		ChargerPhases:        intp(1),
		ChargeEnergyAdded:    12.3,
		TimeToFullCharge:     floatp(2.5),
	}

	It("reports energy, rate, and remaining time while charging", func() {
		Expect(status.ChargingSummary(charging)).To(Equal("+12.3 kWh @ 9.6 kW (2 hours and 30 minutes)"))
	})
	It("lets active charging win over latch and schedule flags", func() {
		cs := charging
		cs.ChargePortLatch = "Engaged"
		cs.ScheduledChargingPending = true
		Expect(status.ChargingSummary(cs)).To(HavePrefix("+12.3 kWh @ 9.6 kW"))
	})
	It("tolerates a missing phase count", func() {
		cs := charging
		cs.ChargerPhases = nil
		Expect(status.ChargingSummary(cs)).To(HavePrefix("+12.3 kWh @ 0.0 kW"))
	})
	It("omits the remaining-time phrase when the estimate is absent", func() {
		cs := charging
		cs.TimeToFullCharge = nil
		Expect(status.ChargingSummary(cs)).To(Equal("+12.3 kWh @ 9.6 kW"))
	})
	It("reports Unplugged when not charging and the port is unlatched", func() {
		cs := owner.ChargeState{ChargingState: "Stopped", ScheduledChargingPending: true}
		Expect(status.ChargingSummary(cs)).To(Equal("Unplugged"))
	})
	It("reports Scheduled when plugged in with a pending schedule", func() {
		cs := owner.ChargeState{
			ChargingState:            "Stopped",
			ChargePortLatch:          "Engaged",
			ScheduledChargingPending: true,
		}
		Expect(status.ChargingSummary(cs)).To(Equal("Scheduled"))
	})
	It("passes the raw charging state through otherwise", func() {
		cs := owner.ChargeState{ChargingState: "Complete", ChargePortLatch: "Engaged"}
		Expect(status.ChargingSummary(cs)).To(Equal("Complete"))
	})
})

var _ = Describe("LockInfo", func() {
	It("pairs Locked with the Unlock action", func() {
		Expect(status.LockInfo(true)).To(Equal(status.LockSummary{
			Label: "Locked", ActionLabel: "Unlock", Command: "door_unlock",
		}))
	})
	It("pairs Unlocked with the Lock action", func() {
		Expect(status.LockInfo(false)).To(Equal(status.LockSummary{
			Label: "Unlocked", ActionLabel: "Lock", Command: "door_lock",
		}))
	})
})
