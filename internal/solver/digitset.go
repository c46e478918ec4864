package solver

import (
	"math/bits"

	"svw.info/gridsolver/internal/domain"
)

// DigitSet is a candidate set over digits 1..9, one bit per digit
// (bit d set means digit d is still possible).
type DigitSet uint16

const fullSet DigitSet = 0x3fe // bits 1..9

// FullDigitSet returns the set containing every digit.
func FullDigitSet() DigitSet { return fullSet }

// SingleDigit returns the set containing only d.
func SingleDigit(d domain.Digit) DigitSet { return 1 << d }

func (s DigitSet) Has(d domain.Digit) bool { return s&(1<<d) != 0 }

func (s DigitSet) Remove(d domain.Digit) DigitSet { return s &^ (1 << d) }

func (s DigitSet) Add(d domain.Digit) DigitSet { return s | (1 << d) }

// Count returns the number of candidates in the set.
func (s DigitSet) Count() int { return bits.OnesCount16(uint16(s)) }

// Single returns the sole candidate if exactly one remains.
func (s DigitSet) Single() (domain.Digit, bool) {
	if s.Count() != 1 {
		return 0, false
	}
	return domain.Digit(bits.TrailingZeros16(uint16(s))), true
}

// PopLowest removes and returns the smallest candidate. Ascending
// candidate order is what makes search output deterministic.
func (s *DigitSet) PopLowest() (domain.Digit, bool) {
	if *s == 0 {
		return 0, false
	}
	d := domain.Digit(bits.TrailingZeros16(uint16(*s)))
	*s = s.Remove(d)
	return d, true
}

// Digits lists the candidates in ascending order.
func (s DigitSet) Digits() []domain.Digit {
	out := make([]domain.Digit, 0, s.Count())
	for rest := s; rest != 0; {
		d, _ := rest.PopLowest()
		out = append(out, d)
	}
	return out
}
