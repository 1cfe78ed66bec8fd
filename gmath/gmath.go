// Package gmath provides degree-based trigonometry and distance/angle helpers
// used throughout sketch. All functions are stateless.
package gmath

import "math"

// Round rounds x to the nearest integer. Ties round toward positive infinity,
// so Round(2.5) == 3 and Round(-2.5) == -2.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// SinDegrees returns the sine of angle, expressed in degrees.
// Multiples of 90 degrees return exact values.
func SinDegrees(angle float64) float64 {
	if v, ok := exactQuadrant(angle); ok {
		return v[1]
	}
	return math.Sin(ToRadians(angle))
}

// CosDegrees returns the cosine of angle, expressed in degrees.
// Multiples of 90 degrees return exact values.
func CosDegrees(angle float64) float64 {
	if v, ok := exactQuadrant(angle); ok {
		return v[0]
	}
	return math.Cos(ToRadians(angle))
}

// TanDegrees returns the tangent of angle, expressed in degrees.
func TanDegrees(angle float64) float64 {
	return SinDegrees(angle) / CosDegrees(angle)
}

// ToDegrees converts an angle in radians to degrees.
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ToRadians converts an angle in degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Distance returns the distance from the origin to (x, y).
func Distance(x, y float64) float64 {
	return math.Hypot(x, y)
}

// DistanceBetween returns the distance from (x0, y0) to (x1, y1).
func DistanceBetween(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

// Angle returns the angle in degrees of the vector from the origin to (x, y),
// measured from the +x axis toward +y. The result lies in (-180, 180].
// Angle(0, 0) is 0.
func Angle(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	deg := ToDegrees(math.Atan2(y, x))
	if deg <= -180 {
		deg += 360
	}
	return deg
}

// AngleBetween returns the angle in degrees of the vector from (x0, y0) to
// (x1, y1), with the same convention as Angle.
func AngleBetween(x0, y0, x1, y1 float64) float64 {
	return Angle(x1-x0, y1-y0)
}

// exactQuadrant returns {cos, sin} for angles that are whole multiples of 90.
func exactQuadrant(angle float64) ([2]float64, bool) {
	q := angle / 90
	if q != math.Trunc(q) || math.IsInf(q, 0) {
		return [2]float64{}, false
	}
	switch int(math.Mod(q, 4)+4) % 4 {
	case 0:
		return [2]float64{1, 0}, true
	case 1:
		return [2]float64{0, 1}, true
	case 2:
		return [2]float64{-1, 0}, true
	default:
		return [2]float64{0, -1}, true
	}
}
