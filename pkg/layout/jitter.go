package layout

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
)

// jitter offsets p by up to amplitude in a direction derived from id and
// seed. The same id and seed always produce the same offset.
func jitter(id string, p Point, amplitude float64, seed uint64) Point {
	h := fnv.New64a()
	h.Write([]byte(id))
	s := h.Sum64() ^ seed
	rng := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))

	angle := rng.Float64() * 2 * math.Pi
	dist := rng.Float64() * amplitude
	return Point{X: p.X + dist*math.Cos(angle), Y: p.Y + dist*math.Sin(angle)}
}
