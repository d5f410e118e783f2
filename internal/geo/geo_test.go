package geo

import (
	"math"
	"testing"

	"github.com/playperu/questhunt/internal/questhunt"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      questhunt.Coordinates
		want      float64
		tolerance float64
	}{
		{
			name: "coincident points",
			a:    questhunt.Coordinates{Lat: -12.0464, Lon: -77.0428},
			b:    questhunt.Coordinates{Lat: -12.0464, Lon: -77.0428},
			want: 0, tolerance: 0,
		},
		{
			// Classic Vincenty test pair: Land's End to Dunnet Head.
			name: "long baseline",
			a:    questhunt.Coordinates{Lat: 50.066389, Lon: -5.714722},
			b:    questhunt.Coordinates{Lat: 58.643889, Lon: -3.07},
			want: 969954.114, tolerance: 0.5,
		},
		{
			// One degree of latitude along the Greenwich meridian.
			name: "one degree of latitude",
			a:    questhunt.Coordinates{Lat: 0, Lon: 0},
			b:    questhunt.Coordinates{Lat: 1, Lon: 0},
			want: 110574.4, tolerance: 50,
		},
		{
			// One degree of longitude on the equator is a hair over 111 km.
			name: "one degree of longitude at the equator",
			a:    questhunt.Coordinates{Lat: 0, Lon: 0},
			b:    questhunt.Coordinates{Lat: 0, Lon: 1},
			want: 111319.5, tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Distance() = %f, want %f ± %f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := questhunt.Coordinates{Lat: -12.0464, Lon: -77.0428}
	b := questhunt.Coordinates{Lat: -12.0438, Lon: -77.0301}

	ab := Distance(a, b)
	ba := Distance(b, a)
	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("Distance not symmetric: %f vs %f", ab, ba)
	}
	if ab < 1000 || ab > 2000 {
		t.Fatalf("Distance() = %f, want roughly 1.4 km across central Lima", ab)
	}
}

func TestDistanceGameScale(t *testing.T) {
	// ~100 m apart: one arc-second of latitude is about 30.9 m.
	a := questhunt.Coordinates{Lat: -12.0464, Lon: -77.0428}
	b := questhunt.Coordinates{Lat: a.Lat + 3.24/3600, Lon: a.Lon}

	got := Distance(a, b)
	if got < 90 || got > 110 {
		t.Fatalf("Distance() = %f, want about 100 m", got)
	}
}
