package sskr

import (
	"fmt"
	"io"

	"github.com/martinivanov/sskr-tool/pkg/secure"
)

// Single-level Shamir threshold sharing of a byte buffer. Every byte
// position of the buffer is an independent polynomial over GF(256) with the
// secret byte as the constant term. Shares are evaluated at the non-zero
// x-coordinates 1..count; x = 0 is reserved for the secret itself and is
// the interpolation target on recombination.

// splitBuffer splits secret into count shares requiring threshold of them
// to recombine. The returned slice is indexed by share; share i carries
// x-coordinate i+1. Randomness for the polynomial coefficients is drawn
// from rng.
func splitBuffer(threshold, count byte, secret []byte, rng io.Reader) ([][]byte, error) {
	if threshold == 0 || threshold > count || count > MaxShareCount {
		return nil, fmt.Errorf("%w: threshold %d of %d shares", ErrInvalidParameters, threshold, count)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret buffer", ErrInvalidParameters)
	}

	// Threshold of one means every share is the secret verbatim.
	if threshold == 1 {
		shares := make([][]byte, count)
		for i := range shares {
			shares[i] = make([]byte, len(secret))
			copy(shares[i], secret)
		}
		return shares, nil
	}

	// Random coefficients for degrees 1..threshold-1; the constant term
	// (degree 0) is the secret.
	coeffs := make([][]byte, threshold-1)
	for i := range coeffs {
		coeffs[i] = make([]byte, len(secret))
		if err := fillRandom(rng, coeffs[i]); err != nil {
			return nil, err
		}
	}

	shares := make([][]byte, count)
	for i := byte(0); i < count; i++ {
		x := i + 1
		y := make([]byte, len(secret))
		for k := range secret {
			// Horner evaluation from the highest-degree coefficient
			// down to the secret byte.
			acc := byte(0)
			for d := len(coeffs) - 1; d >= 0; d-- {
				acc = gfAdd(gfMul(acc, x), coeffs[d][k])
			}
			y[k] = gfAdd(gfMul(acc, x), secret[k])
		}
		shares[i] = y
	}

	for i := range coeffs {
		secure.Zero(coeffs[i])
	}

	return shares, nil
}

// recombineBuffer recovers the secret from at least threshold shares with
// pairwise-distinct x-coordinates by interpolating at x = 0. Extra shares
// beyond the threshold are ignored.
func recombineBuffer(threshold byte, shares []point) ([]byte, error) {
	distinct := make(map[byte]bool, len(shares))
	selected := make([]point, 0, threshold)
	for _, s := range shares {
		if distinct[s.x] {
			continue
		}
		distinct[s.x] = true
		if len(selected) < int(threshold) {
			selected = append(selected, s)
		}
	}

	if len(selected) < int(threshold) {
		return nil, fmt.Errorf("%w: have %d distinct shares, need %d",
			ErrInsufficientShares, len(selected), threshold)
	}

	if threshold == 1 {
		value := make([]byte, len(selected[0].y))
		copy(value, selected[0].y)
		return value, nil
	}

	return interpolate(0, selected), nil
}

// fillRandom fills buf from rng, failing loudly rather than zero-filling.
func fillRandom(rng io.Reader, buf []byte) error {
	if rng == nil {
		return fmt.Errorf("%w: nil reader", ErrRandomnessUnavailable)
	}
	if _, err := io.ReadFull(rng, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return nil
}
