package game

import "fmt"

// CanMint reports whether the high score badge can be minted: the player's
// best reached the threshold and no badge was minted yet.
func (s *Session) CanMint() bool {
	return s.best >= s.cfg.Badge.Threshold && !s.Minted()
}

// Minted reports whether the player already minted a badge.
func (s *Session) Minted() bool {
	if s.minted {
		return true
	}
	if l, ok := s.board.(BadgeLedger); ok {
		return l.HasBadge(s.player)
	}
	return false
}

// MintBadge records the badge locally and returns the acknowledgement.
// Nothing leaves the device.
func (s *Session) MintBadge() (string, bool) {
	if !s.CanMint() {
		return "", false
	}
	s.minted = true
	if l, ok := s.board.(BadgeLedger); ok {
		l.MarkBadge(s.player)
	}
	return fmt.Sprintf("Stub: would mint a Meme Coin Madness high-score badge for %s (score %d) on Base.", s.player, s.best), true
}
