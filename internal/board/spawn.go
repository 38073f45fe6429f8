package board

// DefaultFourProbability is the chance a spawned tile is a 4 instead of a 2.
const DefaultFourProbability = 0.10

// Source is the randomness Spawn needs. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Spawned describes a tile placed by Spawn.
type Spawned struct {
	At    Coord `json:"at"`
	Value int   `json:"value"`
}

// Spawn places a 2 (or a 4 with probability fourProb) on an empty cell
// chosen uniformly at random, writing it into b. It reports false and leaves
// b untouched when the board has no empty cell.
func Spawn(b Board, rng Source, fourProb float64) (Spawned, bool) {
	empty := EmptyCells(b)
	if len(empty) == 0 {
		return Spawned{}, false
	}

	at := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}

	b[at.Row][at.Col] = value
	return Spawned{At: at, Value: value}, true
}
