// Package components defines the site and organism state types for the simulation.
package components

// Kind tags what a site currently holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPrey
	KindPredator
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	default:
		return "empty"
	}
}

// Coord is a grid coordinate.
type Coord struct {
	X, Y int
}

// PreyTraits holds the per-individual parameters of a prey.
// Individuals are immutable; offspring copy the parent's traits.
type PreyTraits struct {
	ReproductionRate float64
	MovingFactor     float64
}

// PredatorTraits holds the per-individual parameters of a predator.
// The mutable hunger counter lives on the Site, not here.
type PredatorTraits struct {
	HuntingFactor    float64
	ReproductionRate float64
	DeathRate        float64 // natural death probability per step
	DeathAfter       int     // steps without a kill before starvation
	InitialHunger    int     // hunger assigned to offspring
}

// Site is a single grid location. At most one occupant at all times.
// Hunger is meaningful only while Kind == KindPredator.
type Site struct {
	Pos      Coord
	Kind     Kind
	Prey     PreyTraits
	Predator PredatorTraits
	Hunger   int
}

// IsEmpty reports whether the site has no occupant.
func (s *Site) IsEmpty() bool {
	return s.Kind == KindEmpty
}

// Clear removes the occupant. Used on death, on a successful hunt
// against this site, and on move-away.
func (s *Site) Clear() {
	s.Kind = KindEmpty
	s.Prey = PreyTraits{}
	s.Predator = PredatorTraits{}
	s.Hunger = 0
}

// SetPrey places a prey with the given traits on the site.
func (s *Site) SetPrey(t PreyTraits) {
	s.Kind = KindPrey
	s.Prey = t
	s.Predator = PredatorTraits{}
	s.Hunger = 0
}

// SetPredator places a predator with the given traits and hunger.
func (s *Site) SetPredator(t PredatorTraits, hunger int) {
	s.Kind = KindPredator
	s.Predator = t
	s.Prey = PreyTraits{}
	s.Hunger = hunger
}
