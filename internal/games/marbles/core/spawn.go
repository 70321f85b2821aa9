package core

// Source is the randomness used by the spawner and falling animation.
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// KindWeight is one row of the spawn table.
type KindWeight struct {
	Kind        Kind
	Probability float64
}

// KindTable lists special kinds with their probabilities; the remainder is Regular.
type KindTable []KindWeight

// DefaultKindTable is 3% bombs and 2% bonus-time marbles.
func DefaultKindTable() KindTable {
	return KindTable{
		{Kind: KindBomb, Probability: 0.03},
		{Kind: KindBonusTime, Probability: 0.02},
	}
}

// Choose maps a uniform draw p in [0,1) to a kind by cumulative probability.
func (t KindTable) Choose(p float64) Kind {
	acc := 0.0
	for _, w := range t {
		acc += w.Probability
		if p < acc {
			return w.Kind
		}
	}
	return KindRegular
}

// Spawner creates new marbles for the launcher.
type Spawner struct {
	rng   Source
	table KindTable
}

// NewSpawner creates a spawner. A nil table uses DefaultKindTable.
func NewSpawner(rng Source, table KindTable) *Spawner {
	if table == nil {
		table = DefaultKindTable()
	}
	return &Spawner{rng: rng, table: table}
}

// Next returns a marble with a color drawn uniformly from colors and a kind
// drawn from the table.
func (s *Spawner) Next(colors []int) *Marble {
	kind := s.table.Choose(s.rng.Float64())
	return NewMarble(s.color(colors), kind)
}

// Regular returns a Regular marble with a uniformly drawn color.
func (s *Spawner) Regular(colors []int) *Marble {
	return NewMarble(s.color(colors), KindRegular)
}

func (s *Spawner) color(colors []int) int {
	if len(colors) == 0 {
		return s.rng.Intn(ColorCount)
	}
	return colors[s.rng.Intn(len(colors))]
}
