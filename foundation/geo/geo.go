// Package geo provides basic geographic calculations over lat/lon pairs
package geo

import "math"

// EarthRadiusMeters is the mean earth radius used for great circle distances
const EarthRadiusMeters = 6371000.0

// Point is a geographic coordinate
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance calculates the haversine great circle distance between p1 and p2 in meters.
// Accurate enough for proportional distance-along-path calculations over transit areas,
// not intended for precision geodesy.
func Distance(p1, p2 Point) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	deltaLat := toRadians(p2.Lat - p1.Lat)
	deltaLon := toRadians(p2.Lon - p1.Lon)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Bearing calculates the initial bearing from p1 to p2 in degrees in range [0, 360)
func Bearing(p1, p2 Point) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	deltaLon := toRadians(p2.Lon - p1.Lon)

	x := math.Sin(deltaLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLon)

	bearing := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// ClosestPointIndex scans points from startIndex to the end and returns the index of the
// point nearest to target, minimizing squared distance in raw lat/lon space. Euclidean
// distance in degrees is adequate for nearest-index snapping over the short spans a
// shape covers. Returns -1 if startIndex leaves nothing to scan.
func ClosestPointIndex(points []Point, target Point, startIndex int) int {
	if startIndex < 0 || startIndex >= len(points) {
		return -1
	}
	closest := -1
	closestDistance := math.MaxFloat64
	for i := startIndex; i < len(points); i++ {
		latDiff := points[i].Lat - target.Lat
		lonDiff := points[i].Lon - target.Lon
		distance := latDiff*latDiff + lonDiff*lonDiff
		if distance < closestDistance {
			closestDistance = distance
			closest = i
		}
	}
	return closest
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
