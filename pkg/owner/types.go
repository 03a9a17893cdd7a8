package owner

// Telemetry snapshots, decoded from data_request payloads. The vendor omits
// fields opportunistically (notably when the car is half-asleep), so anything
// the aggregator must distinguish between absent and zero is a pointer.

// ChargeState is the charging telemetry snapshot.
type ChargeState struct {
	BatteryLevel             int      `json:"battery_level"`
	BatteryRange             float64  `json:"battery_range"`
	EstBatteryRange          float64  `json:"est_battery_range"`
	ChargingState            string   `json:"charging_state"`
	ChargerVoltage           float64  `json:"charger_voltage"`
	ChargerActualCurrent     float64  `json:"charger_actual_current"`
	ChargerPhases            *int     `json:"charger_phases"`
	ChargerPower             float64  `json:"charger_power"`
	ChargeEnergyAdded        float64  `json:"charge_energy_added"`
	ChargeRate               float64  `json:"charge_rate"`
	TimeToFullCharge         *float64 `json:"time_to_full_charge"`
	ChargePortDoorOpen       bool     `json:"charge_port_door_open"`
	ChargePortLatch          string   `json:"charge_port_latch"`
	ScheduledChargingPending bool     `json:"scheduled_charging_pending"`
	ChargeLimitSoc           int      `json:"charge_limit_soc"`
	ChargeLimitSocStd        int      `json:"charge_limit_soc_std"`
	ChargeLimitSocMax        int      `json:"charge_limit_soc_max"`
	Timestamp                int64    `json:"timestamp"`
}

// PortLatched reports whether the charge connector is physically engaged,
// independent of whether charging is active.
func (c ChargeState) PortLatched() bool {
	return c.ChargePortLatch == "Engaged"
}

// ClimateState is the HVAC and temperature snapshot. Temperatures are Celsius.
type ClimateState struct {
	InsideTemp        *float64 `json:"inside_temp"`
	OutsideTemp       *float64 `json:"outside_temp"`
	DriverTempSetting float64  `json:"driver_temp_setting"`
	IsClimateOn       bool     `json:"is_climate_on"`
	IsPreconditioning bool     `json:"is_preconditioning"`
	Timestamp         int64    `json:"timestamp"`
}

// VehicleState is the body snapshot.
type VehicleState struct {
	Locked        bool    `json:"locked"`
	SentryMode    bool    `json:"sentry_mode"`
	Odometer      float64 `json:"odometer"`
	VehicleName   string  `json:"vehicle_name"`
	IsUserPresent bool    `json:"is_user_present"`
	Timestamp     int64   `json:"timestamp"`
}

// DriveState is the location and motion snapshot. Speed is nil when parked.
type DriveState struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Heading    int     `json:"heading"`
	Speed      *int    `json:"speed"`
	ShiftState *string `json:"shift_state"`
	Timestamp  int64   `json:"timestamp"`
}
