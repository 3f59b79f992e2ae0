package sim

import (
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

// InterpolatePosition maps a vehicle's fractional progress between fromStop and toStop
// onto the physical path described by shapePoints, so rendered vehicles follow the
// street geometry rather than a straight line between stops.
//
// The search for the toStop's shape index starts at the fromStop's index, assuming
// shapes are traversed in point order matching trip direction. When that assumption
// fails (looped routes near their wraparound point) the to index is clamped to the
// from index; positions there may be visually off, which is an accepted limitation.
func InterpolatePosition(shapePoints []geo.Point, fromStop *feed.Stop, toStop *feed.Stop, progress float64) geo.Point {
	fromPoint := geo.Point{Lat: fromStop.Lat, Lon: fromStop.Lon}
	if len(shapePoints) < 2 {
		return fromPoint
	}

	fromIndex := geo.ClosestPointIndex(shapePoints, fromPoint, 0)
	toIndex := geo.ClosestPointIndex(shapePoints, geo.Point{Lat: toStop.Lat, Lon: toStop.Lon}, fromIndex)
	if toIndex < fromIndex {
		toIndex = fromIndex
	}

	segment := shapePoints[fromIndex : toIndex+1]
	if len(segment) < 2 {
		return fromPoint
	}

	totalDistance := 0.0
	segmentLengths := make([]float64, len(segment)-1)
	for i := 0; i < len(segment)-1; i++ {
		segmentLengths[i] = geo.Distance(segment[i], segment[i+1])
		totalDistance += segmentLengths[i]
	}

	targetDistance := totalDistance * progress
	traveled := 0.0
	for i, length := range segmentLengths {
		if traveled+length >= targetDistance {
			if length == 0 {
				return segment[i]
			}
			within := (targetDistance - traveled) / length
			return geo.Point{
				Lat: segment[i].Lat + (segment[i+1].Lat-segment[i].Lat)*within,
				Lon: segment[i].Lon + (segment[i+1].Lon-segment[i].Lon)*within,
			}
		}
		traveled += length
	}

	// rounding at progress 1 can step past every segment
	return segment[len(segment)-1]
}
