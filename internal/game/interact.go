package game

import "time"

// Marker is a short-lived hit indicator left where a collectible was tapped.
type Marker struct {
	ID        int
	X, Y      float64
	Points    int
	ExpiresAt time.Time
}

// TapIcon resolves a tap on the icon with id. Each icon can be consumed once:
// tapping an id that is gone, or tapping outside a run, does nothing. It
// returns true if the tap had an effect.
func (s *Session) TapIcon(id int, now time.Time) bool {
	if s.phase != PhaseRunning {
		return false
	}
	icon, ok := s.field.Remove(id)
	if !ok {
		return false
	}
	s.lastSeen = now

	if icon.Archetype.Kind == Hazard {
		s.End(ReasonHazardHit)
		return true
	}

	points := s.cfg.Scoring.PointsPerHit * s.combo
	s.score += points
	s.combo = min(s.combo+1, s.cfg.Scoring.MaxCombo)

	s.markers = append(s.markers, Marker{
		ID:        s.nextMarker,
		X:         icon.X,
		Y:         icon.Y,
		Points:    points,
		ExpiresAt: now.Add(s.cfg.Scoring.MarkerTTL()),
	})
	s.nextMarker++

	s.emit(Event{Type: EventHit, Icon: icon, Points: points, Combo: s.combo, Score: s.score})
	return true
}

// TapBackground resolves a tap on empty field space: the combo resets.
func (s *Session) TapBackground() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.combo = 1
	s.emit(Event{Type: EventMiss, Combo: s.combo, Score: s.score})
	return true
}

// Markers returns the hit markers still visible at now.
func (s *Session) Markers(now time.Time) []Marker {
	var out []Marker
	for _, m := range s.markers {
		if now.Before(m.ExpiresAt) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Session) pruneMarkers(now time.Time) {
	kept := s.markers[:0]
	for _, m := range s.markers {
		if now.Before(m.ExpiresAt) {
			kept = append(kept, m)
		}
	}
	s.markers = kept
}
