package generator

import "github.com/vhtoolkit/overworld/internal/rng"

// PerturbAfter is how many attempts run on the continuing random stream
// before it is reset to the saved seed bumped by one.
const PerturbAfter = 2

// attempts counts generation attempts and perturbs the random stream.
type attempts struct {
	r *rng.Random

	n            int
	sincePerturb int
	seed         uint32
}

func newAttempts(r *rng.Random) *attempts {
	return &attempts{r: r, seed: r.Seed()}
}

// next is called before every attempt, including the first. Attempts 3, 6,
// 9 and so on start from seed+1, seed+2, seed+3.
func (a *attempts) next() {
	a.n++
	a.sincePerturb++
	if a.sincePerturb > PerturbAfter {
		a.sincePerturb = 0
		a.seed++
		a.r.SetSeed(a.seed)
	}
}
