package tracking

import (
	"math"
	"math/rand"

	"munchly-eats/internal/models"
)

// DefaultWaypoints is the number of points generated per route.
const DefaultWaypoints = 30

const (
	// sineAmplitude bends the path away from a perfectly straight line,
	// in degrees, with the period spanning the whole path.
	sineAmplitude = 0.0008
	// jitterBound is the per-point random offset on interior points,
	// in degrees. Endpoints are exact.
	jitterBound = 0.0001
	// signBlock flips the bend direction every this many points.
	signBlock = 5
)

// GeneratePath builds a synthetic route of n waypoints from start to end:
// linear interpolation plus a perpendicular sinusoidal offset whose
// direction alternates in blocks, plus bounded jitter on interior points.
// Generated once per order when tracking begins; immutable thereafter.
func GeneratePath(start, end models.Coordinate, n int) []models.Coordinate {
	if n < 2 {
		n = 2
	}

	dLat := end.Latitude - start.Latitude
	dLon := end.Longitude - start.Longitude

	// Unit perpendicular to the straight-line direction.
	var perpLat, perpLon float64
	if length := math.Hypot(dLat, dLon); length > 0 {
		perpLat = -dLon / length
		perpLon = dLat / length
	}

	path := make([]models.Coordinate, n)
	path[0] = start
	path[n-1] = end
	for i := 1; i < n-1; i++ {
		t := float64(i) / float64(n-1)
		lat := start.Latitude + dLat*t
		lon := start.Longitude + dLon*t

		sign := 1.0
		if (i/signBlock)%2 == 1 {
			sign = -1
		}
		offset := sign * sineAmplitude * math.Sin(math.Pi*t)
		lat += perpLat*offset + (rand.Float64()*2-1)*jitterBound
		lon += perpLon*offset + (rand.Float64()*2-1)*jitterBound

		path[i] = models.Coordinate{Latitude: lat, Longitude: lon}
	}
	return path
}

// PositionAt maps progress in [0,1] onto a waypoint. Out-of-range progress
// is clamped.
func PositionAt(path []models.Coordinate, progress float64) models.Coordinate {
	idx := int(math.Floor(float64(len(path)-1) * progress))
	if idx < 0 {
		idx = 0
	}
	if idx > len(path)-1 {
		idx = len(path) - 1
	}
	return path[idx]
}

// PrefixAt returns the traveled-so-far portion of the path: at least two
// points so the client always has a drawable segment.
func PrefixAt(path []models.Coordinate, progress float64) []models.Coordinate {
	count := int(math.Floor(float64(len(path)) * progress))
	if count < 2 {
		count = 2
	}
	if count > len(path) {
		count = len(path)
	}
	out := make([]models.Coordinate, count)
	copy(out, path[:count])
	return out
}

// Per-tick progress increments and caps while en route.
const (
	onTheWayStep = 0.03
	onTheWayCap  = 0.85
	arrivingStep = 0.02
	arrivingCap  = 0.98
)

// progressTarget returns the next progress value for a status, ratcheted:
// progress never decreases while an order is active.
func progressTarget(status models.OrderStatus, current float64) float64 {
	var target float64
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusPreparing:
		target = 0
	case models.StatusReadyForPickup, models.StatusDriverAssigned:
		target = 0.05
	case models.StatusPickedUp:
		target = 0.15
	case models.StatusOnTheWay:
		target = math.Min(current+onTheWayStep, onTheWayCap)
	case models.StatusArriving:
		target = math.Min(current+arrivingStep, arrivingCap)
	case models.StatusDelivered:
		target = 1.0
	default:
		target = current
	}
	return math.Max(current, target)
}
