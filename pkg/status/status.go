// Package status aggregates per-vehicle telemetry into the values the menu
// renderer consumes. Individual field fetches may fail without aborting a
// render; only transport and authorization failures propagate.
package status

import (
	"context"
	"errors"

	"github.com/therippa/tesla-bitbar/internal/log"
	"github.com/therippa/tesla-bitbar/pkg/owner"
)

// Telemetry is the read surface the aggregator needs from a vehicle. It is
// satisfied by owner.Facade.
type Telemetry interface {
	ChargeState(ctx context.Context) (owner.ChargeState, error)
	ClimateState(ctx context.Context) (owner.ClimateState, error)
	VehicleState(ctx context.Context) (owner.VehicleState, error)
	DriveState(ctx context.Context) (owner.DriveState, error)
}

// LatLong is a GPS coordinate pair from the drive state.
type LatLong struct {
	Lat  float64
	Long float64
}

// VehicleStatus is the aggregated point-in-time state of one vehicle. For
// unreachable vehicles Reduced is set and no telemetry fields are populated;
// the renderer emits only the state label and the wake/HVAC actions.
type VehicleStatus struct {
	Vehicle owner.Vehicle
	Reduced bool

	Charge  Field[owner.ChargeState]
	Climate Field[owner.ClimateState]
	Body    Field[owner.VehicleState]
	Drive   Field[owner.DriveState]
}

// Aggregate fetches the telemetry snapshots for one vehicle, sequentially and
// tolerant of per-field absence. A *PartialDataError on any snapshot marks
// that field unavailable and the remaining snapshots are still fetched. Any
// other error, including ErrAuthExpired, aborts and propagates: an auth
// failure during a data fetch is a re-login condition, never "field
// unavailable".
func Aggregate(ctx context.Context, v owner.Vehicle, src Telemetry) (VehicleStatus, error) {
	st := VehicleStatus{Vehicle: v}
	if !v.Reachable() {
		st.Reduced = true
		return st, nil
	}

	if charge, err := src.ChargeState(ctx); err == nil {
		st.Charge = Avail(charge)
	} else if err = absorb("charge_state", err); err != nil {
		return st, err
	}
	if climate, err := src.ClimateState(ctx); err == nil {
		st.Climate = Avail(climate)
	} else if err = absorb("climate_state", err); err != nil {
		return st, err
	}
	if body, err := src.VehicleState(ctx); err == nil {
		st.Body = Avail(body)
	} else if err = absorb("vehicle_state", err); err != nil {
		return st, err
	}
	if drive, err := src.DriveState(ctx); err == nil {
		st.Drive = Avail(drive)
	} else if err = absorb("drive_state", err); err != nil {
		return st, err
	}
	return st, nil
}

// absorb swallows *PartialDataError (logging it) and passes every other error
// through.
func absorb(field string, err error) error {
	var partial *owner.PartialDataError
	if errors.As(err, &partial) {
		log.Warning("%s unavailable: %s", field, err)
		return nil
	}
	return err
}

// InsideTemp returns the cabin temperature in the display unit, absent when
// the climate snapshot or the reading itself is missing.
func (s VehicleStatus) InsideTemp(unit Unit) Field[float64] {
	if !s.Climate.Valid || s.Climate.Value.InsideTemp == nil {
		return Field[float64]{}
	}
	return Avail(ConvertTemp(*s.Climate.Value.InsideTemp, unit))
}

// OutsideTemp returns the exterior temperature in the display unit,
// independent of the cabin reading.
func (s VehicleStatus) OutsideTemp(unit Unit) Field[float64] {
	if !s.Climate.Valid || s.Climate.Value.OutsideTemp == nil {
		return Field[float64]{}
	}
	return Avail(ConvertTemp(*s.Climate.Value.OutsideTemp, unit))
}

// BatteryLevel returns the state of charge percentage.
func (s VehicleStatus) BatteryLevel() Field[int] {
	if !s.Charge.Valid {
		return Field[int]{}
	}
	return Avail(s.Charge.Value.BatteryLevel)
}

// BatteryRange returns the rated range in miles.
func (s VehicleStatus) BatteryRange() Field[float64] {
	if !s.Charge.Valid {
		return Field[float64]{}
	}
	return Avail(s.Charge.Value.BatteryRange)
}

// Charging returns the condensed charging phrase.
func (s VehicleStatus) Charging() Field[string] {
	if !s.Charge.Valid {
		return Field[string]{}
	}
	return Avail(ChargingSummary(s.Charge.Value))
}

// ChargeLimit returns the configured charge limit percentage.
func (s VehicleStatus) ChargeLimit() Field[int] {
	if !s.Charge.Valid {
		return Field[int]{}
	}
	return Avail(s.Charge.Value.ChargeLimitSoc)
}

// ClimateOn reports whether HVAC is running; false when unknown, so the menu
// defaults to offering "Start HVAC".
func (s VehicleStatus) ClimateOn() bool {
	return s.Climate.Valid && s.Climate.Value.IsClimateOn
}

// Locked returns the lock flag from the body snapshot.
func (s VehicleStatus) Locked() Field[bool] {
	if !s.Body.Valid {
		return Field[bool]{}
	}
	return Avail(s.Body.Value.Locked)
}

// Location returns the GPS position from the drive state.
func (s VehicleStatus) Location() Field[LatLong] {
	if !s.Drive.Valid {
		return Field[LatLong]{}
	}
	return Avail(LatLong{Lat: s.Drive.Value.Latitude, Long: s.Drive.Value.Longitude})
}
