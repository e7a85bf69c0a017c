package lookup

import "testing"

func TestRescore(t *testing.T) {
	t.Parallel()

	// Exact initials: heuristic 0.5 + 0.3 = 0.8 beats the base.
	if got := rescore("GPS", "Global Positioning System", "", 0.45); got != 0.8 {
		t.Errorf("rescore exact = %v, want 0.8", got)
	}

	// No alignment, no keywords: heuristic 0.5; a higher base wins.
	if got := rescore("GPS", "something unrelated entirely", "", 0.58); got != 0.58 {
		t.Errorf("rescore base wins = %v, want 0.58", got)
	}

	// Shared topical keyword adds 0.04.
	withKW := rescore("GPS", "Global Positioning System network", "a network of satellites", 0.1)
	without := rescore("GPS", "Global Positioning System network", "a fleet of satellites", 0.1)
	if diff := withKW - without; diff < 0.039 || diff > 0.041 {
		t.Errorf("keyword bonus = %v, want ~0.04", diff)
	}

	// Ceiling holds even with many keywords.
	busy := "computer data network protocol web memory processor graphics"
	if got := rescore("CDN", "Computer Data Network computer data network protocol web memory processor graphics", busy, 0.1); got > 0.9 {
		t.Errorf("rescore = %v, want <= 0.9", got)
	}
}

func TestBoost(t *testing.T) {
	t.Parallel()

	if got := boost("GPS", "Global Positioning System", 0.5); got != 0.8 {
		t.Errorf("exact boost = %v, want 0.8", got)
	}
	if got := boost("GPS", "Global Positioning System of Satellites", 0.5); got != 0.65 {
		t.Errorf("partial boost = %v, want 0.65", got)
	}
	if got := boost("GPS", "nothing related", 0.5); got != 0.5 {
		t.Errorf("no boost = %v, want 0.5", got)
	}
	if got := boost("GPS", "Global Positioning System", 0.9); got != 0.95 {
		t.Errorf("boost cap = %v, want 0.95", got)
	}
}
