// Package rng implements the game's pseudo-random generator and the lossy
// conversion between ten-symbol seed codes and 32-bit seeds.
package rng

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Alphabet is the 32-symbol code alphabet. A symbol's value is its position.
const Alphabet = "BCDFGHJKLMNPQRSTAIUEO VWXYZ.,&♂♀"

// CodeLength is the number of symbols in a seed code.
const CodeLength = 10

const multiplier = 0x1863D

var (
	ErrInvalidCode   = errors.New("rng: invalid seed code")
	ErrInvalidSymbol = fmt.Errorf("%w: symbol outside alphabet", ErrInvalidCode)
	ErrCodeLength    = fmt.Errorf("%w: code must be exactly %d symbols", ErrInvalidCode, CodeLength)
)

var alphabet = []rune(Alphabet)

// Random is the game's generator together with the code that produced its
// initial seed.
type Random struct {
	seed uint32
	code [CodeLength]byte
}

// FromSeed creates a generator from a seed and derives a code that decodes
// back to the same seed.
func FromSeed(seed uint32) *Random {
	r := &Random{seed: seed}
	r.code[0] = byte(seed >> 28)
	for i := 1; i < 8; i++ {
		r.code[i] = byte(seed>>(28-4*i)) & 0xF
	}
	return r
}

// FromCode decodes a ten-symbol code. Several codes can map to the same
// seed: the packing below reproduces the game's overlapping accumulators.
func FromCode(code string) (*Random, error) {
	if utf8.RuneCountInString(code) != CodeLength {
		for _, c := range code {
			if symbolValue(c) < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, c)
			}
		}
		return nil, fmt.Errorf("%w: got %d", ErrCodeLength, utf8.RuneCountInString(code))
	}

	r := &Random{}
	i := 0
	for _, c := range code {
		v := symbolValue(c)
		if v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, c)
		}
		r.code[i] = byte(v)
		i++
	}

	r.seed = pack(r.code)
	return r, nil
}

// pack folds the symbols high-to-low into two accumulators. Symbols with the
// top bit set are five bits wide, the rest four. The symbol that crosses the
// 32-bit boundary is OR-ed fully into the low bits of the first accumulator
// and its overflow bits also start the second one.
func pack(code [CodeLength]byte) uint32 {
	var c1, c1Shift, c2, c2Shift uint32

	for _, letter := range code {
		width := symbolWidth(letter)
		masked := uint32(letter & byte(1<<width-1))

		if c1Shift < 32 {
			c1 |= masked << saturatingSub(32-c1Shift, width)
			c1Shift += width

			if c1Shift > 32 {
				overflow := c1Shift - 32
				c2 = uint32(letter&byte(1<<overflow-1)) << (32 - overflow)
				c2Shift = overflow
			}
		} else if c2Shift < 32 {
			c2 |= masked << saturatingSub(32-c2Shift, width)
			c2Shift += width
		}
	}

	return c1 ^ (c2 >> (32 - c2Shift))
}

func symbolWidth(letter byte) uint32 {
	if letter&0x10 == 0 {
		return 4
	}
	return 5
}

func saturatingSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}

func symbolValue(c rune) int {
	for i, a := range alphabet {
		if a == c {
			return i
		}
	}
	return -1
}

// PadCode right-pads a short code with spaces, the way the game fills an
// incomplete entry. Longer codes are returned unchanged.
func PadCode(code string) string {
	n := utf8.RuneCountInString(code)
	if n >= CodeLength {
		return code
	}
	return code + strings.Repeat(" ", CodeLength-n)
}

// Seed returns the current generator state.
func (r *Random) Seed() uint32 {
	return r.seed
}

// SetSeed overwrites the generator state. Only the retry perturbation in map
// generation needs this.
func (r *Random) SetSeed(seed uint32) {
	r.seed = seed
}

// Code returns the code the generator was created from.
func (r *Random) Code() string {
	var b strings.Builder
	for _, v := range r.code {
		b.WriteRune(alphabet[v])
	}
	return b.String()
}

func (r *Random) step() uint32 {
	r.seed = ^r.seed * multiplier
	return r.seed >> 16
}

// Rand returns a value in [0, n). n must be positive.
func (r *Random) Rand(n uint32) uint32 {
	return r.step() % n
}

// RandByte returns the low byte of the next output.
func (r *Random) RandByte() byte {
	return byte(r.step() & 0xFF)
}
