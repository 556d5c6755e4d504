// Package geo converts EPSG:5179 (Korea 2000 / Unified CS) plane coordinates
// to WGS-84 latitude/longitude.
//
// EPSG:5179 is a Transverse Mercator projection on the GRS80 ellipsoid with
// its natural origin at 38°N 127.5°E, scale factor 0.9996, false easting
// 1,000,000 m and false northing 2,000,000 m. The forward and inverse
// formulas are the standard series expansions (Snyder, "Map Projections:
// A Working Manual", USGS PP 1395), accurate to well under a millimetre
// inside the Korean peninsula, far below the parcel data's own precision.
package geo

import "math"

// GRS80 ellipsoid and Korea 2000 / Unified CS projection parameters.
const (
	semiMajor  = 6378137.0         // GRS80 semi-major axis, metres
	flattening = 1 / 298.257222101 // GRS80 flattening

	originLat     = 38.0 * math.Pi / 180  // latitude of natural origin
	originLon     = 127.5 * math.Pi / 180 // longitude of natural origin
	scaleFactor   = 0.9996                // scale at natural origin
	falseEasting  = 1000000.0             // metres
	falseNorthing = 2000000.0             // metres
)

var (
	e2  = flattening * (2 - flattening) // first eccentricity squared
	ep2 = e2 / (1 - e2)                 // second eccentricity squared

	// originM is the meridional arc length from the equator to originLat.
	originM = meridionalArc(originLat)
)

// ToWGS84 converts an EPSG:5179 easting/northing pair to WGS-84 latitude and
// longitude in degrees.
func ToWGS84(easting, northing float64) (lat, lon float64) {
	m := originM + (northing-falseNorthing)/scaleFactor
	mu := m / (semiMajor * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	sqrt1e2 := math.Sqrt(1 - e2)
	e1 := (1 - sqrt1e2) / (1 + sqrt1e2)

	// Footprint latitude via the rectifying-latitude series.
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	den := 1 - e2*sinPhi1*sinPhi1
	n1 := semiMajor / math.Sqrt(den)
	r1 := semiMajor * (1 - e2) / math.Pow(den, 1.5)
	d := (easting - falseEasting) / (n1 * scaleFactor)

	phi := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lambda := originLon + (d-
		(1+2*t1+c1)*d*d*d/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120)/cosPhi1

	return phi * 180 / math.Pi, lambda * 180 / math.Pi
}

// FromWGS84 converts WGS-84 latitude/longitude in degrees to an EPSG:5179
// easting/northing pair. Used by the fixture generator and roundtrip tests.
func FromWGS84(lat, lon float64) (easting, northing float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := semiMajor / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := (lambda - originLon) * cosPhi

	m := meridionalArc(phi)

	easting = falseEasting + scaleFactor*n*(a+
		(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*a*a*a*a*a/120)

	northing = falseNorthing + scaleFactor*(m-originM+n*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*a*a*a*a/24+
		(61-58*t+t*t+600*c-330*ep2)*a*a*a*a*a*a/720))

	return easting, northing
}

// meridionalArc returns the ellipsoidal arc length from the equator to
// latitude phi (radians).
func meridionalArc(phi float64) float64 {
	return semiMajor * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))
}
