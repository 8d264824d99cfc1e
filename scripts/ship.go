// Package scripts holds the example logic objects that run on top of the bridge.
package scripts

import (
	"math"

	"github.com/plus3/tossbridge/bridge"
	"go.uber.org/zap"
)

// ShipType is the script type name Ship registers under.
const ShipType = "Ship"

const (
	defaultRadius   = 50
	defaultSpeed    = 1
	defaultAltitude = 50
)

// Vec3 is a position or direction in world space.
type Vec3 struct {
	X, Y, Z float32
}

// Ship flies a horizontal circle around the origin at a fixed altitude, facing along its
// direction of travel.
type Ship struct {
	bridge.Base

	Radius   float32
	Speed    float32 // radians per second
	Altitude float32
	Phase    float32 // starting angle, radians

	elapsed  float32
	position Vec3
	forward  Vec3
}

// NewShip returns a Ship with the default orbit.
func NewShip() *Ship {
	s := &Ship{
		Radius:   defaultRadius,
		Speed:    defaultSpeed,
		Altitude: defaultAltitude,
	}
	s.place()
	return s
}

// Register adds Ship to r under ShipType.
func Register(r *bridge.Registry) {
	r.RegisterFactory(ShipType, func() bridge.LifecycleSink { return NewShip() })
}

func (s *Ship) OnCreate() {
	s.Logger().Info("created a ship component", zap.Float32("radius", s.Radius), zap.Float32("speed", s.Speed))
	s.place()
}

func (s *Ship) OnUpdate(deltaTime float32) {
	s.elapsed += deltaTime
	s.place()
}

// LogSomething writes a marker line through the component's logger.
func (s *Ship) LogSomething() {
	s.Logger().Info("log something from the ship", zap.Float32("elapsed", s.elapsed))
}

// Position returns the ship's current position.
func (s *Ship) Position() Vec3 {
	return s.position
}

// Forward returns the unit direction of travel.
func (s *Ship) Forward() Vec3 {
	return s.forward
}

// Angle returns the current orbit angle in radians.
func (s *Ship) Angle() float32 {
	return s.Phase + s.elapsed*s.Speed
}

// Elapsed returns the seconds of update time the ship has received.
func (s *Ship) Elapsed() float32 {
	return s.elapsed
}

func (s *Ship) place() {
	angle := float64(s.Angle())
	sin, cos := math.Sincos(angle)
	s.position = Vec3{
		X: s.Radius * float32(cos),
		Y: s.Altitude,
		Z: s.Radius * float32(sin),
	}
	s.forward = Vec3{X: float32(-sin), Z: float32(cos)}
}
