package owner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/therippa/tesla-bitbar/internal/log"
)

// Vehicle state strings as reported by the registry.
const (
	StateOnline  = "online"
	StateAsleep  = "asleep"
	StateDriving = "driving"
)

// Vehicle is an immutable snapshot of a registry entry. It carries no
// behavior; use a Facade to issue requests scoped to the vehicle's id.
type Vehicle struct {
	ID          int64  `json:"id"`
	VehicleID   int64  `json:"vehicle_id"`
	VIN         string `json:"vin"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
	InService   bool   `json:"in_service"`
}

// Reachable reports whether telemetry reads are worth attempting. Asleep or
// unknown vehicles would only produce errors (or be woken by accident).
func (v Vehicle) Reachable() bool {
	return v.State == StateOnline || v.State == StateDriving
}

// apiResponse is the envelope the Owner API wraps every payload in.
type apiResponse struct {
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error,omitempty"`
}

// Vehicles lists all vehicles reachable by the authenticated account, each
// usable with a Facade bound to the same session. A 401 here is the primary
// trigger for the re-login flow and surfaces as ErrAuthExpired.
func Vehicles(ctx context.Context, s *Session) ([]Vehicle, error) {
	body, err := s.Get(ctx, "vehicles")
	if err != nil {
		return nil, err
	}
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("malformed vehicle list: %w", err)
	}
	var vehicles []Vehicle
	if err := json.Unmarshal(envelope.Response, &vehicles); err != nil {
		return nil, fmt.Errorf("malformed vehicle list: %w", err)
	}
	log.Debug("Account has %d vehicle(s)", len(vehicles))
	return vehicles, nil
}

// Facade issues wake, telemetry, and command requests for a single vehicle.
// It is a stateless value; the vehicle id and session dependency are explicit
// at every call site.
type Facade struct {
	session *Session
	id      int64
}

// NewFacade binds a vehicle to the session used for its sub-requests. The
// Facade does not own the session.
func NewFacade(s *Session, v Vehicle) Facade {
	return Facade{session: s, id: v.ID}
}

// WakeUp asks the vendor to wake the vehicle. Idempotent; safe to call on a
// vehicle that is already online.
func (f Facade) WakeUp(ctx context.Context) error {
	_, err := f.session.Post(ctx, fmt.Sprintf("vehicles/%d/wake_up", f.id), nil)
	return err
}

// DataRequest fetches the named telemetry snapshot (e.g. "charge_state") and
// decodes the envelope's response field into out. When the vehicle is asleep
// or unreachable it reports *PartialDataError, which callers treat as "field
// unavailable" rather than aborting the whole render.
func (f Facade) DataRequest(ctx context.Context, name string, out interface{}) error {
	body, err := f.session.Get(ctx, fmt.Sprintf("vehicles/%d/data_request/%s", f.id, name))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusRequestTimeout {
			// 408 means the vehicle went offline between the registry call and
			// this read.
			return &PartialDataError{Field: name, Err: err}
		}
		return err
	}
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("malformed %s payload: %w", name, err)
	}
	if len(envelope.Response) == 0 || string(envelope.Response) == "null" {
		return &PartialDataError{Field: name}
	}
	return json.Unmarshal(envelope.Response, out)
}

// Command invokes a named vendor action, e.g. "door_lock" or
// "auto_conditioning_start". The command names form an open enumeration and
// are not validated locally. Only success or failure is reported.
func (f Facade) Command(ctx context.Context, name string, params interface{}) error {
	var body []byte
	if params != nil {
		var err error
		body, err = json.Marshal(params)
		if err != nil {
			return err
		}
	}
	rsp, err := f.session.Post(ctx, fmt.Sprintf("vehicles/%d/command/%s", f.id, name), body)
	if err != nil {
		return err
	}
	var result struct {
		Response struct {
			Result bool   `json:"result"`
			Reason string `json:"reason"`
		} `json:"response"`
	}
	// Some commands return an empty body on success.
	if len(rsp) == 0 || json.Unmarshal(rsp, &result) != nil {
		return nil
	}
	if !result.Response.Result && result.Response.Reason != "" {
		return fmt.Errorf("command %s failed: %s", name, result.Response.Reason)
	}
	return nil
}

// SetChargeLimit sets the charge limit to the given percentage.
func (f Facade) SetChargeLimit(ctx context.Context, percent int) error {
	return f.Command(ctx, "set_charge_limit", map[string]int{"percent": percent})
}

// ChargeState fetches the charging telemetry snapshot.
func (f Facade) ChargeState(ctx context.Context) (ChargeState, error) {
	var state ChargeState
	err := f.DataRequest(ctx, "charge_state", &state)
	return state, err
}

// ClimateState fetches the HVAC and temperature snapshot.
func (f Facade) ClimateState(ctx context.Context) (ClimateState, error) {
	var state ClimateState
	err := f.DataRequest(ctx, "climate_state", &state)
	return state, err
}

// VehicleState fetches the body snapshot (locks, odometer, sentry).
func (f Facade) VehicleState(ctx context.Context) (VehicleState, error) {
	var state VehicleState
	err := f.DataRequest(ctx, "vehicle_state", &state)
	return state, err
}

// DriveState fetches the location and motion snapshot.
func (f Facade) DriveState(ctx context.Context) (DriveState, error) {
	var state DriveState
	err := f.DataRequest(ctx, "drive_state", &state)
	return state, err
}
