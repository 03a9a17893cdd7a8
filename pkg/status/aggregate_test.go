package status_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/therippa/tesla-bitbar/pkg/owner"
	"github.com/therippa/tesla-bitbar/pkg/status"
)

// fakeTelemetry stands in for owner.Facade; each snapshot can independently
// succeed or fail.
type fakeTelemetry struct {
	charge     owner.ChargeState
	chargeErr  error
	climate    owner.ClimateState
	climateErr error
	body       owner.VehicleState
	bodyErr    error
	drive      owner.DriveState
	driveErr   error

	calls int
}

func (f *fakeTelemetry) ChargeState(context.Context) (owner.ChargeState, error) {
	f.calls++
	return f.charge, f.chargeErr
}

func (f *fakeTelemetry) ClimateState(context.Context) (owner.ClimateState, error) {
	f.calls++
	return f.climate, f.climateErr
}

func (f *fakeTelemetry) VehicleState(context.Context) (owner.VehicleState, error) {
	f.calls++
	return f.body, f.bodyErr
}

func (f *fakeTelemetry) DriveState(context.Context) (owner.DriveState, error) {
	f.calls++
	return f.drive, f.driveErr
}

var _ = Describe("Aggregate", func() {
	var (
		src    *fakeTelemetry
		online owner.Vehicle
	)

	BeforeEach(func() {
		src = &fakeTelemetry{
			charge:  owner.ChargeState{BatteryLevel: 72, ChargingState: "Disconnected"},
			climate: owner.ClimateState{InsideTemp: floatp(21.0), IsClimateOn: true},
			body:    owner.VehicleState{Locked: true},
			drive:   owner.DriveState{Latitude: 37.4, Longitude: -122.1},
		}
		online = owner.Vehicle{ID: 1, DisplayName: "Nikola", State: owner.StateOnline}
	})

	It("collects all four snapshots for an online vehicle", func() {
		st, err := status.Aggregate(context.Background(), online, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Reduced).To(BeFalse())
		Expect(st.Charge.Valid).To(BeTrue())
		Expect(st.Climate.Valid).To(BeTrue())
		Expect(st.Body.Valid).To(BeTrue())
		Expect(st.Drive.Valid).To(BeTrue())
		Expect(st.BatteryLevel().Value).To(Equal(72))
		Expect(st.Locked().Value).To(BeTrue())
		Expect(st.ClimateOn()).To(BeTrue())
		Expect(st.Location().Value).To(Equal(status.LatLong{Lat: 37.4, Long: -122.1}))
	})

	It("emits a reduced status for an asleep vehicle without fetching", func() {
		asleep := owner.Vehicle{ID: 2, DisplayName: "Edison", State: owner.StateAsleep}
		st, err := status.Aggregate(context.Background(), asleep, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Reduced).To(BeTrue())
		Expect(src.calls).To(BeZero())
	})

	It("treats driving vehicles as reachable", func() {
		driving := owner.Vehicle{ID: 3, State: owner.StateDriving}
		st, err := status.Aggregate(context.Background(), driving, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Reduced).To(BeFalse())
	})

	It("absorbs a partial failure and keeps the remaining fields", func() {
		src.climateErr = &owner.PartialDataError{Field: "climate_state"}
		st, err := status.Aggregate(context.Background(), online, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Climate.Valid).To(BeFalse())
		Expect(st.InsideTemp(status.UnitFahrenheit).Valid).To(BeFalse())
		Expect(st.Charge.Valid).To(BeTrue())
		Expect(st.Body.Valid).To(BeTrue())
		Expect(st.Drive.Valid).To(BeTrue())
	})

	It("propagates an auth failure instead of absorbing it", func() {
		src.chargeErr = owner.ErrAuthExpired
		_, err := status.Aggregate(context.Background(), online, src)
		Expect(errors.Is(err, owner.ErrAuthExpired)).To(BeTrue())
	})

	It("propagates a network failure", func() {
		src.driveErr = &owner.NetworkError{Err: errors.New("connection reset")}
		_, err := status.Aggregate(context.Background(), online, src)
		var netErr *owner.NetworkError
		Expect(errors.As(err, &netErr)).To(BeTrue())
	})

	It("converts temperatures independently", func() {
		src.climate.OutsideTemp = nil
		st, err := status.Aggregate(context.Background(), online, src)
		Expect(err).NotTo(HaveOccurred())
		inside := st.InsideTemp(status.UnitFahrenheit)
		Expect(inside.Valid).To(BeTrue())
		Expect(inside.Value).To(BeNumerically("~", 69.8, 1e-9))
		Expect(st.OutsideTemp(status.UnitFahrenheit).Valid).To(BeFalse())
	})
})
