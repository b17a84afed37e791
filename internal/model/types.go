// Package model holds the wire-level problem schema and the result DTOs
// shared by the API, the store, and the solver boundary.
package model

import "time"

// Input is the routing problem as submitted by callers. Stop and vehicle
// order is significant: the distance matrix is indexed by stop position.
type Input struct {
	Stops          []Stop         `json:"stops"`
	Vehicles       []Vehicle      `json:"vehicles"`
	DistanceMatrix [][]float64    `json:"distance_matrix,omitempty"`
	Options        map[string]any `json:"options,omitempty"` // reserved
}

// Stop is a location to visit. Precedes names stops this stop must be
// serviced before; the solver currently accepts at most one entry.
type Stop struct {
	ID               string             `json:"id"`
	Precedes         []string           `json:"precedes,omitempty"`
	Quantity         map[string]float64 `json:"quantity,omitempty"`
	StartTimeWindows [2]uint64          `json:"start_time_windows,omitempty"`
	Location         Location           `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Vehicle is a fleet unit. InitialStops seed the vehicle's route before the
// search starts.
type Vehicle struct {
	ID           string             `json:"id"`
	Capacity     map[string]float64 `json:"capacity,omitempty"`
	Speed        float64            `json:"speed,omitempty"`
	InitialStops []InitialStop      `json:"initial_stops,omitempty"`
}

type InitialStop struct {
	ID string `json:"id"`
}

// SolveOptions tune a single solve run.
type SolveOptions struct {
	MaxIterations int    `json:"maxIterations,omitempty"`
	Seed          uint64 `json:"seed,omitempty"`
}

// SolveRequest is the body of POST /v1/solve. ID is optional; clients that
// want to follow the progress stream pick their own id up front, otherwise
// the server assigns one.
type SolveRequest struct {
	ID      string       `json:"id,omitempty"`
	Problem Input        `json:"problem"`
	Options SolveOptions `json:"options,omitempty"`
}

// VehicleRoute is one vehicle's ordered stop sequence in a result.
type VehicleRoute struct {
	VehicleID string   `json:"vehicleId"`
	Stops     []string `json:"stops"`
	Cost      float64  `json:"cost"`
}

// UnplannedUnit reports a plan unit the search left unassigned and why.
type UnplannedUnit struct {
	Stops  []string `json:"stops"`
	Reason string   `json:"reason"`
}

// SolveResult is a completed solve run.
type SolveResult struct {
	ID         string          `json:"id"`
	Value      float64         `json:"value"`
	Iterations int             `json:"iterations"`
	Seed       uint64          `json:"seed"`
	Routes     []VehicleRoute  `json:"routes"`
	Unplanned  []UnplannedUnit `json:"unplanned"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ProgressEvent streams intermediate search state to subscribers.
type ProgressEvent struct {
	SolveID   string  `json:"solveId"`
	Iteration int     `json:"iteration"`
	BestValue float64 `json:"bestValue"`
	Done      bool    `json:"done,omitempty"`
}
