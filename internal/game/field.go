package game

import (
	"math"

	"github.com/vovakirdan/memecoin-madness/internal/config"
)

// Icon is a live falling icon. Positions are normalized to the field:
// x runs 0..1 left to right, y runs 0..1 top to bottom.
type Icon struct {
	ID        int
	X, Y      float64
	VX, VY    float64 // VY is the base fall rate, before difficulty scaling
	Archetype Archetype
}

// PlaceIcon builds a new icon just above the top edge with a random
// horizontal position, speed factor and drift.
func PlaceIcon(r Rand, id int, a Archetype, cfg config.FieldConfig) Icon {
	x := cfg.SpawnXMin + r.Float64()*cfg.SpawnXSpan
	speed := cfg.SpeedFactorMin + r.Float64()*cfg.SpeedFactorSpan
	vx := (r.Float64() - 0.5) * cfg.Drift
	return Icon{
		ID:        id,
		X:         x,
		Y:         cfg.SpawnY,
		VX:        vx,
		VY:        cfg.BaseFallSpeed * speed,
		Archetype: a,
	}
}

// Field is the ordered set of in-flight icons, oldest first.
type Field struct {
	cfg    config.FieldConfig
	icons  []Icon
	nextID int // Never reset, so ids stay unique across runs
}

// NewField creates an empty field.
func NewField(cfg config.FieldConfig) *Field {
	return &Field{cfg: cfg, nextID: 1}
}

// Spawn adds one random icon from set and returns it. At capacity the
// oldest icon is evicted first.
func (f *Field) Spawn(r Rand, set []Archetype) Icon {
	icon := PlaceIcon(r, f.nextID, PickArchetype(r, set), f.cfg)
	f.nextID++

	if f.cfg.MaxIcons > 0 {
		for len(f.icons) >= f.cfg.MaxIcons {
			f.icons = f.icons[1:]
		}
	}
	f.icons = append(f.icons, icon)
	return icon
}

// Step advances every icon by one motion tick. Fall speed is multiplied by
// factor; horizontal motion bounces off the walls. Icons past the cull line
// are dropped. It returns the number of icons culled.
func (f *Field) Step(factor float64) int {
	kept := f.icons[:0]
	culled := 0
	for _, ic := range f.icons {
		ic.X += ic.VX
		ic.Y += ic.VY * factor

		if ic.X < f.cfg.WallMin {
			ic.X = f.cfg.WallMin
			ic.VX = math.Abs(ic.VX)
		} else if ic.X > f.cfg.WallMax {
			ic.X = f.cfg.WallMax
			ic.VX = -math.Abs(ic.VX)
		}

		if ic.Y >= f.cfg.CullY {
			culled++
			continue
		}
		kept = append(kept, ic)
	}
	// Clear the tail so evicted icons are not retained by the backing array
	for i := len(kept); i < len(f.icons); i++ {
		f.icons[i] = Icon{}
	}
	f.icons = kept
	return culled
}

// Remove takes the icon with id out of the field.
func (f *Field) Remove(id int) (Icon, bool) {
	for i, ic := range f.icons {
		if ic.ID == id {
			f.icons = append(f.icons[:i], f.icons[i+1:]...)
			return ic, true
		}
	}
	return Icon{}, false
}

// Clear drops every icon. Ids keep counting.
func (f *Field) Clear() {
	f.icons = nil
}

// Icons returns a copy of the in-flight icons, oldest first.
func (f *Field) Icons() []Icon {
	out := make([]Icon, len(f.icons))
	copy(out, f.icons)
	return out
}

// Len returns the number of in-flight icons.
func (f *Field) Len() int {
	return len(f.icons)
}
