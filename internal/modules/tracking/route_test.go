package tracking

import (
	"math"
	"testing"

	"munchly-eats/internal/models"
)

var (
	start = models.Coordinate{Latitude: 37.7858, Longitude: -122.4064}
	end   = models.Coordinate{Latitude: 37.7599, Longitude: -122.4148}
)

func TestGeneratePathEndpointsExact(t *testing.T) {
	path := GeneratePath(start, end, DefaultWaypoints)

	if len(path) != DefaultWaypoints {
		t.Fatalf("len(path) = %d; want %d", len(path), DefaultWaypoints)
	}
	if path[0] != start {
		t.Errorf("path[0] = %+v; want start %+v", path[0], start)
	}
	if path[len(path)-1] != end {
		t.Errorf("path[last] = %+v; want end %+v", path[len(path)-1], end)
	}
}

func TestGeneratePathInteriorStaysNearLine(t *testing.T) {
	path := GeneratePath(start, end, DefaultWaypoints)

	// Interior points deviate, but only by the sine amplitude plus jitter.
	maxDeviation := sineAmplitude + 2*jitterBound
	dLat := end.Latitude - start.Latitude
	dLon := end.Longitude - start.Longitude
	length := math.Hypot(dLat, dLon)

	for i, p := range path {
		// Perpendicular distance from the straight line.
		dev := math.Abs((p.Latitude-start.Latitude)*dLon-(p.Longitude-start.Longitude)*dLat) / length
		if dev > maxDeviation {
			t.Errorf("point %d deviates %.6f from the line; max %.6f", i, dev, maxDeviation)
		}
	}
}

func TestGeneratePathMinimumLength(t *testing.T) {
	path := GeneratePath(start, end, 1)
	if len(path) != 2 {
		t.Errorf("len(path) = %d; want clamp to 2", len(path))
	}
}

func TestPositionAt(t *testing.T) {
	path := GeneratePath(start, end, DefaultWaypoints)

	if got := PositionAt(path, 0); got != path[0] {
		t.Errorf("PositionAt(0) = %+v; want first waypoint", got)
	}
	if got := PositionAt(path, 1); got != path[len(path)-1] {
		t.Errorf("PositionAt(1) = %+v; want last waypoint", got)
	}
	// Out-of-range progress clamps rather than panics.
	if got := PositionAt(path, -0.5); got != path[0] {
		t.Errorf("PositionAt(-0.5) = %+v; want first waypoint", got)
	}
	if got := PositionAt(path, 1.5); got != path[len(path)-1] {
		t.Errorf("PositionAt(1.5) = %+v; want last waypoint", got)
	}
}

// prefixAt(p1) must be a prefix of prefixAt(p2) for p1 < p2, and never
// shorter than two points.
func TestPrefixAtMonotonic(t *testing.T) {
	path := GeneratePath(start, end, DefaultWaypoints)

	progresses := []float64{0, 0.05, 0.15, 0.3, 0.5, 0.85, 0.98, 1}
	var prev []models.Coordinate
	for _, p := range progresses {
		prefix := PrefixAt(path, p)
		if len(prefix) < 2 {
			t.Fatalf("PrefixAt(%.2f) has %d points; want >= 2", p, len(prefix))
		}
		if len(prefix) < len(prev) {
			t.Fatalf("PrefixAt(%.2f) shorter than previous prefix", p)
		}
		for i := range prev {
			if prefix[i] != prev[i] {
				t.Fatalf("PrefixAt(%.2f)[%d] differs from earlier prefix", p, i)
			}
		}
		prev = prefix
	}

	if full := PrefixAt(path, 1); len(full) != len(path) {
		t.Errorf("PrefixAt(1) has %d points; want the whole path (%d)", len(full), len(path))
	}
}

func TestProgressTarget(t *testing.T) {
	tests := []struct {
		name    string
		status  models.OrderStatus
		current float64
		want    float64
	}{
		{"confirmed pins zero", models.StatusConfirmed, 0, 0},
		{"preparing pins zero", models.StatusPreparing, 0, 0},
		{"ready for pickup", models.StatusReadyForPickup, 0, 0.05},
		{"driver assigned", models.StatusDriverAssigned, 0, 0.05},
		{"picked up", models.StatusPickedUp, 0.05, 0.15},
		{"on the way increments", models.StatusOnTheWay, 0.15, 0.18},
		{"on the way caps", models.StatusOnTheWay, 0.84, 0.85},
		{"arriving increments", models.StatusArriving, 0.85, 0.87},
		{"arriving caps", models.StatusArriving, 0.97, 0.98},
		{"delivered completes", models.StatusDelivered, 0.98, 1},
		{"ratchet never decreases", models.StatusReadyForPickup, 0.5, 0.5},
		{"cancelled freezes", models.StatusCancelled, 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progressTarget(tt.status, tt.current)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("progressTarget(%s, %.2f) = %.4f; want %.4f", tt.status, tt.current, got, tt.want)
			}
		})
	}
}

func TestProgressTargetMonotonicOverLifecycle(t *testing.T) {
	progress := 0.0
	status := models.StatusConfirmed
	for status != models.StatusDelivered {
		next := progressTarget(status, progress)
		if next < progress {
			t.Fatalf("progress decreased at %s: %.4f -> %.4f", status, progress, next)
		}
		progress = next
		status = status.Next()
	}
	if got := progressTarget(status, progress); got != 1.0 {
		t.Errorf("final progress = %.4f; want 1.0", got)
	}
}
