// Package flyg reads recorded flight files produced by the simulator and
// turns them into typed Go structures. Recordings are JSON documents with
// lower-camel-case keys, stored either as plain text or gzip-compressed.
package flyg

// FlightRecording is the root of a recorded flight.
type FlightRecording struct {
	// PlaneInformation holds the static information about the used plane.
	PlaneInformation PlaneInformation `json:"planeInformation"`
	// LandingSpeed is the touch down speed of the plane in feet per second.
	LandingSpeed float64 `json:"landingSpeed"`
	// Times holds the important time recordings of the flight.
	Times Times `json:"times"`
	// FuelRecords holds the fuel samples taken during the flight, in the
	// order they were recorded. Empty for recordings made before fuel
	// sampling was added to the format.
	FuelRecords []FuelRecord `json:"fuelRecords"`
}

// PlaneInformation describes the plane which was used to perform the flight.
// This is static information which does not change during the flight.
type PlaneInformation struct {
	// Name of the plane, as provided by the simulator.
	Name string `json:"name"`
	// FuelCapacity is the overall amount of fuel the plane can carry, in gallons.
	FuelCapacity uint32 `json:"fuelCapacity"`
	// NumberOfEngines the plane had when performing the flight.
	NumberOfEngines uint8 `json:"numberOfEngines"`
	// FuelWeight is the weight of the fuel in pounds per gallon.
	FuelWeight float64 `json:"fuelWeight"`
	// UnusableFuelQuantity is the amount of fuel (in gallons) which is on
	// board but cannot be used by the engines.
	UnusableFuelQuantity float64 `json:"unusableFuelQuantity"`
}

// Times holds the four flight-phase boundaries: block-off (the plane starts
// moving for the first time), takeoff (wheels up), landing (wheels down) and
// block-on (final stop, engines shut down). The loader does not check that
// they are in chronological order.
type Times struct {
	BlockOffTime string `json:"blockOffTime"`
	TakeoffTime  string `json:"takeoffTime"`
	LandingTime  string `json:"landingTime"`
	BlockOnTime  string `json:"blockOnTime"`
}

// FuelRecord is a single sample of the fuel quantity remaining at the time
// the sample was taken, in gallons.
type FuelRecord struct {
	FuelQuantity float64 `json:"fuelQuantity"`
}
