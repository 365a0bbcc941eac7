// Package game implements the Meme Coin Madness rules: a timed session,
// falling icons that spawn and move on fixed ticks, and the tap resolver that
// scores collectibles and ends the run on the hazard.
//
// Nothing here reads the wall clock or a global random source. Time is passed
// in by the caller and randomness comes from an injected Rand, so a session
// can be replayed deterministically.
package game

// IconKind distinguishes scoring icons from the run-ending one.
type IconKind int

const (
	Collectible IconKind = iota
	Hazard
)

func (k IconKind) String() string {
	switch k {
	case Collectible:
		return "collectible"
	case Hazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Archetype is the static description of one kind of falling icon.
type Archetype struct {
	ID     string
	Label  string
	Ticker string
	Glyph  string
	Kind   IconKind
}

// Archetypes is the full spawn table. Selection is uniform over all entries,
// so the single hazard shows up once per len(Archetypes) spawns on average.
var Archetypes = []Archetype{
	{ID: "degen", Label: "Degen", Ticker: "DEGEN", Glyph: "🧢", Kind: Collectible},
	{ID: "brian", Label: "Brian", Ticker: "BRIAN", Glyph: "🐶", Kind: Collectible},
	{ID: "toshis", Label: "Toshis", Ticker: "TOSHIS", Glyph: "🧙‍♂️", Kind: Collectible},
	{ID: "brett", Label: "Brett", Ticker: "BRETT", Glyph: "🐸", Kind: Collectible},
	{ID: "doginme", Label: "Dog in Me", Ticker: "DOG", Glyph: "🐕", Kind: Collectible},
	{ID: "rug", Label: "Rug", Ticker: "RUG", Glyph: "🧶", Kind: Hazard},
}

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// PickArchetype selects one archetype uniformly from set.
func PickArchetype(r Rand, set []Archetype) Archetype {
	return set[r.Intn(len(set))]
}

// ArchetypeByID looks up an archetype in the default table.
func ArchetypeByID(id string) (Archetype, bool) {
	for _, a := range Archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return Archetype{}, false
}
