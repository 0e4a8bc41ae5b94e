package tile

import (
	"math"
	"time"

	"github.com/jackparrish/deskfolio/pkg/geometry"
)

// floatSeedBase keeps float parameters independent of scatter coordinates.
const floatSeedBase = 4242.0

// Float is a small vertical oscillation applied to idle tiles.
type Float struct {
	Period    time.Duration
	Amplitude float64
	Phase     float64

	epoch time.Time
}

// NewFloat derives per-tile parameters from ordinal: a period of 3.2-5.2s,
// an amplitude of 2-5px and a phase in [0, 2π), so neighbours never move in
// lockstep.
func NewFloat(ordinal int) Float {
	seed := float64(ordinal) + floatSeedBase
	return Float{
		Period:    time.Duration((3.2 + 2*geometry.Seeded(seed*5)) * float64(time.Second)),
		Amplitude: 2 + 3*geometry.Seeded(seed*11),
		Phase:     2 * math.Pi * geometry.Seeded(seed*13),
	}
}

// Restart resumes the oscillation from a neutral phase at now.
func (f *Float) Restart(now time.Time) {
	f.epoch = now
	f.Phase = 0
}

// Offset returns the vertical displacement at now.
func (f Float) Offset(now time.Time) float64 {
	if f.Period <= 0 || f.Amplitude == 0 {
		return 0
	}
	var elapsed float64
	if f.epoch.IsZero() {
		elapsed = float64(now.UnixNano()) / float64(time.Second)
	} else {
		elapsed = now.Sub(f.epoch).Seconds()
	}
	return f.Amplitude * math.Sin(2*math.Pi*elapsed/f.Period.Seconds()+f.Phase)
}
