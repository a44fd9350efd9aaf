package util

import "math/rand"

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Offset draws (dx, dy) uniformly from {-1,0,1}², the null offset included.
func Offset(r *rand.Rand) (int, int) {
	return r.Intn(3) - 1, r.Intn(3) - 1
}

// NonZeroOffset redraws until the offset points away from the origin.
func NonZeroOffset(r *rand.Rand) (int, int) {
	for {
		dx, dy := Offset(r)
		if dx != 0 || dy != 0 {
			return dx, dy
		}
	}
}

// Sampler yields distinct indices from [0,n) in random order without
// materialising the whole permutation (sparse Fisher-Yates).
type Sampler struct {
	r       *rand.Rand
	n       int
	drawn   int
	swapped map[int]int
}

func NewSampler(r *rand.Rand, n int) *Sampler {
	return &Sampler{r: r, n: n, swapped: map[int]int{}}
}

func (s *Sampler) Remaining() int { return s.n - s.drawn }

func (s *Sampler) Next() (int, bool) {
	if s.drawn >= s.n {
		return 0, false
	}
	j := s.drawn + s.r.Intn(s.n-s.drawn)
	vj := s.at(j)
	s.swapped[j] = s.at(s.drawn)
	s.drawn++
	return vj, true
}

func (s *Sampler) at(i int) int {
	if v, ok := s.swapped[i]; ok {
		return v
	}
	return i
}
