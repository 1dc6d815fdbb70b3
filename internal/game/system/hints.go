package system

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"unicode"

	"github.com/vovakirdan/setfall/internal/game/entity"
)

// HintMask is the placeholder for a hidden character.
const HintMask = '_'

// HintLevel maps fall progress onto a hint level using four increasing thresholds.
func HintLevel(fraction float64, thresholds [4]float64) int {
	level := entity.HintNone
	for i, th := range thresholds {
		if fraction >= th {
			level = i
		}
	}
	return level
}

// RevealCount returns how many hidden characters a hint level uncovers.
// The progression is bucketed by the hidden length so that short names do
// not become trivial at level 1 while long ones stay unsolved at level 3.
// A hint never reveals the final hidden character.
func RevealCount(hidden, level int) int {
	if hidden <= 0 || level <= 0 {
		return 0
	}
	if level > entity.MaxHintLevel {
		level = entity.MaxHintLevel
	}

	var n int
	switch {
	case hidden <= 3:
		n = [...]int{1, 1, 2}[level-1]
	case hidden <= 6:
		n = [...]int{2, 3, 4}[level-1]
	case hidden <= 10:
		n = [...]int{3, 5, 7}[level-1]
	default:
		n = int(float64(hidden) * [...]float64{0.35, 0.65, 0.85}[level-1])
	}
	return max(0, min(n, hidden-1))
}

// exempt reports whether r is always shown.
func exempt(r rune) bool {
	switch r {
	case ' ', ':', '\'', '-':
		return true
	}
	return false
}

// HintText renders the hint for a set name at the given level. Level -1
// yields no hint. Level 0 shows only the set code plus any always-visible
// keywords. Levels 1-3 reveal progressively more characters in an order
// fixed by seed, so a falling icon's hint only ever grows.
func HintText(name, code string, level int, alwaysVisible []string, seed int) string {
	if level < 0 {
		return ""
	}

	runes := []rune(name)
	visible := make([]bool, len(runes))
	keyword := markKeywords(runes, visible, alwaysVisible)

	var hidden []int
	for i, r := range runes {
		if exempt(r) {
			visible[i] = true
		}
		if !visible[i] {
			hidden = append(hidden, i)
		}
	}

	tag := "(" + code + ")"
	if level == 0 && !keyword {
		return tag
	}

	order := revealOrder(runes, hidden, name, seed)
	for _, idx := range order[:RevealCount(len(hidden), level)] {
		visible[idx] = true
	}

	var sb strings.Builder
	for i, r := range runes {
		if visible[i] {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(HintMask)
		}
	}
	sb.WriteRune(' ')
	sb.WriteString(tag)
	return sb.String()
}

// markKeywords flags every case-insensitive occurrence of a keyword as visible
// and reports whether any was found.
func markKeywords(runes []rune, visible []bool, keywords []string) bool {
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	found := false
	for _, kw := range keywords {
		k := []rune(strings.ToLower(kw))
		if len(k) == 0 {
			continue
		}
		for start := 0; start+len(k) <= len(lower); start++ {
			if string(lower[start:start+len(k)]) == string(k) {
				for j := start; j < start+len(k); j++ {
					visible[j] = true
				}
				found = true
			}
		}
	}
	return found
}

// revealOrder lists hidden positions in the order hints uncover them: the
// first letter of each word, then the rest shuffled by seed.
func revealOrder(runes []rune, hidden []int, name string, seed int) []int {
	var initials, rest []int
	for _, idx := range hidden {
		if idx == 0 || exempt(runes[idx-1]) {
			initials = append(initials, idx)
		} else {
			rest = append(rest, idx)
		}
	}

	h := fnv.New64a()
	h.Write([]byte(name))
	rng := rand.New(rand.NewSource(int64(h.Sum64()) ^ int64(seed)))
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	return append(initials, rest...)
}
