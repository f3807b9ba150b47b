package dateline

import "github.com/golang/geo/s1"

const (
	// DefaultPlaneEpsilon is the half-width of the thick dateline plane.
	DefaultPlaneEpsilon = 1e-10
	// DefaultPoleEpsilon is the radius of the circle around each pole inside
	// which a point is treated as the pole itself.
	DefaultPoleEpsilon = 1e-10
)

// Options control a Wrapper.
type Options struct {
	// PlaneEpsilon and PoleEpsilon are distances in unit-sphere coordinates.
	PlaneEpsilon float64
	PoleEpsilon  float64

	// CentralMeridian is the longitude, in degrees, at the centre of the
	// output. The dateline is the meridian opposite it and output
	// longitudes lie in [CentralMeridian-180, CentralMeridian+180].
	CentralMeridian float64

	// TessellationTolerance, when positive, densifies every output edge so
	// that straight lines in longitude/latitude follow the great-circle arc
	// within this angle.
	TessellationTolerance s1.Angle
}

// DefaultOptions wraps at the ±180 meridian without tessellation.
func DefaultOptions() Options {
	return Options{
		PlaneEpsilon: DefaultPlaneEpsilon,
		PoleEpsilon:  DefaultPoleEpsilon,
	}
}

// Option changes one field of Options.
type Option func(*Options)

func WithCentralMeridian(degrees float64) Option {
	return func(o *Options) { o.CentralMeridian = degrees }
}

func WithTessellation(tolerance s1.Angle) Option {
	return func(o *Options) { o.TessellationTolerance = tolerance }
}

// WithEpsilons overrides the thick-plane half-width and the pole radius.
func WithEpsilons(plane, pole float64) Option {
	return func(o *Options) {
		o.PlaneEpsilon = plane
		o.PoleEpsilon = pole
	}
}
