package geo

import "math"

// EarthRadiusMetres is the mean Earth radius shared by every spherical
// calculation in this package.
const EarthRadiusMetres = 6371000.0

// MetresPerDegree is the ground length of one degree of arc on the same
// sphere, used to convert degree offsets into local metres and back.
const MetresPerDegree = 2 * math.Pi * EarthRadiusMetres / 360.0

func DegToRad(d float64) float64 { return d * math.Pi / 180.0 }

func RadToDeg(r float64) float64 { return r * 180.0 / math.Pi }

// Distance returns the great-circle distance in metres between two points
// given in degrees, by the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := DegToRad(lat1)
	phi2 := DegToRad(lat2)
	dPhi := DegToRad(lat2 - lat1)
	dLambda := DegToRad(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadiusMetres * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bearing returns the initial bearing in radians from the first point to the
// second, measured clockwise from north, wrapped to [0, 2π). Coincident
// points yield 0.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	phi1 := DegToRad(lat1)
	phi2 := DegToRad(lat2)
	dLambda := DegToRad(lon2 - lon1)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	theta := math.Atan2(y, x)
	return math.Mod(theta+2*math.Pi, 2*math.Pi)
}
