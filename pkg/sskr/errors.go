package sskr

import "errors"

// Error taxonomy for split and combine. Callers match with errors.Is;
// call sites wrap these with context via fmt.Errorf and %w.
var (
	// ErrInvalidParameters indicates a malformed Spec, a secret of
	// unsupported length, or a share with inconsistent header fields.
	ErrInvalidParameters = errors.New("sskr: invalid parameters")

	// ErrInsufficientShares indicates that too few qualifying groups or
	// members were supplied to reach the required thresholds.
	ErrInsufficientShares = errors.New("sskr: insufficient shares")

	// ErrDuplicateShare indicates two shares claiming the same member slot
	// with conflicting values.
	ErrDuplicateShare = errors.New("sskr: duplicate share")

	// ErrInconsistentParameters indicates shares that disagree on group
	// threshold, group count, member threshold, or value length.
	ErrInconsistentParameters = errors.New("sskr: inconsistent share parameters")

	// ErrMixedShareSets indicates shares carrying different identifiers,
	// i.e. originating from different split operations.
	ErrMixedShareSets = errors.New("sskr: shares from mixed share sets")

	// ErrChecksumMismatch indicates that recombination produced a secret
	// whose embedded digest does not verify.
	ErrChecksumMismatch = errors.New("sskr: checksum mismatch")

	// ErrTruncatedShare indicates a serialized share too short to contain
	// a header and payload.
	ErrTruncatedShare = errors.New("sskr: truncated share")

	// ErrRandomnessUnavailable indicates the supplied randomness source
	// could not produce the requested bytes.
	ErrRandomnessUnavailable = errors.New("sskr: randomness unavailable")
)
