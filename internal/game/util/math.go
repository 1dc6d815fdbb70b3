// Package util holds stateless helpers shared by the game systems and screens.
package util

import (
	"math/rand"

	"github.com/vovakirdan/setfall/internal/core"
)

// RandomRange returns a uniform sample in [min, max]. If max < min the
// bounds collapse to min.
func RandomRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// PickIndex returns a uniform index in [0, n), or -1 when n is zero.
func PickIndex(rng *rand.Rand, n int) int {
	if n <= 0 {
		return -1
	}
	return rng.Intn(n)
}

// Sample returns up to n distinct elements of items in random order.
// The input slice is not modified.
func Sample[T any](rng *rand.Rand, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	idx := rng.Perm(len(items))[:n]
	out := make([]T, n)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// FallFraction is an icon's progress from spawn to the ground line, clamped to [0, 1].
// An icon spawns with its top edge at -iconSize, which maps to 0.
func FallFraction(y, iconSize, height, groundHeight float64) float64 {
	track := height - groundHeight
	if track <= 0 {
		return 1
	}
	return Clamp01((y + iconSize) / track)
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	return core.ClampF(v, 0, 1)
}

// Progress returns how far a countdown has run, from 0 (just started) to 1 (expired).
func Progress(remaining, total int) float64 {
	if total <= 0 {
		return 1
	}
	return Clamp01(1 - float64(remaining)/float64(total))
}

// Opacity fades from 1 to 0 over the second half of a countdown.
func Opacity(remaining, total int) float64 {
	p := Progress(remaining, total)
	if p < 0.5 {
		return 1
	}
	return Clamp01(core.Lerp(1, 0, 2*p-1))
}

// Accuracy returns success / (success + failure), or -1 with no attempts.
func Accuracy(success, failure int) float64 {
	total := success + failure
	if total <= 0 {
		return -1
	}
	return float64(success) / float64(total)
}
