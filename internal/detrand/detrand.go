// Package detrand provides the deterministic pseudo-random primitives behind
// discovery selection. Every viewer evaluating the same wall-clock window must
// land on the same item without coordination, so everything here is a pure
// function of an integer seed and must stay bit-identical across processes.
package detrand

import (
	"time"
	"unicode/utf16"
)

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

func lcgNext(seed uint64) uint64 {
	return (lcgMultiplier*seed + lcgIncrement) % lcgModulus
}

// SeededRandom returns a float in [0,1) derived from seed via a single
// linear-congruential step. Pure: the same non-negative seed always yields the
// same value.
func SeededRandom(seed int64) float64 {
	return float64(lcgNext(uint64(seed))) / lcgModulus
}

// HashString is the classic polynomial rolling hash, (h<<5)-h+c over UTF-16
// code units with 32-bit signed wraparound, absolute value taken. Always
// non-negative.
func HashString(s string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h<<5 - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// SeededShuffle returns a Fisher-Yates permutation of items. The swap index at
// position i is floor(next*(i+1)), with the seed threaded through successive
// LCG steps. The input slice is left untouched.
func SeededShuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	cur := uint64(seed)
	for i := len(out) - 1; i > 0; i-- {
		cur = lcgNext(cur)
		j := int(float64(cur) / lcgModulus * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// DateSeed composes a calendar-day seed: year*10000 + month*100 + day.
func DateSeed(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// HourSeed extends DateSeed with the hour, stable per calendar hour.
func HourSeed(t time.Time) int64 {
	return DateSeed(t)*100 + int64(t.Hour())
}

// WindowSeed is the seed for a discovery window: hour*100 + minute.
func WindowSeed(t time.Time) int64 {
	return int64(t.Hour())*100 + int64(t.Minute())
}
