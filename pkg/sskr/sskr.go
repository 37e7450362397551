// Package sskr implements Sharded Secret Key Reconstruction (SSKR), a
// two-level hierarchical Shamir's Secret Sharing scheme as described in
// bcr-2020-011.
//
// A secret is split into groups of member shares: recovering a group's
// secret requires that group's member threshold, and recovering the
// original secret requires the group threshold of recovered group secrets.
// Both levels use the same Shamir primitive over GF(256). An embedded
// digest detects wrong or mismatched share combinations, so recombination
// never silently yields an incorrect secret.
//
// Split and Combine are pure, stateless, and safe for concurrent use; the
// only external dependency is the caller-supplied randomness source.
package sskr

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/martinivanov/sskr-tool/pkg/secure"
)

// Split splits secret into groups of shares according to spec, drawing all
// randomness from rng. The secret must be 16 to 32 bytes long with even
// length. The returned shares are grouped in spec order; flatten and
// distribute them as needed.
func Split(secret []byte, spec Spec, rng io.Reader) ([][]Share, error) {
	if err := validateSecretLen(len(secret)); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	identifier, err := newIdentifier(rng)
	if err != nil {
		return nil, err
	}

	extended, err := extendSecret(secret, rng)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(extended)

	groupSecrets, err := splitBuffer(spec.GroupThreshold, byte(len(spec.Groups)), extended, rng)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, gs := range groupSecrets {
			secure.Zero(gs)
		}
	}()

	groups := make([][]Share, len(spec.Groups))
	for g, groupSpec := range spec.Groups {
		memberValues, err := splitBuffer(
			groupSpec.MemberThreshold,
			groupSpec.MemberCount,
			groupSecrets[g],
			rng,
		)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", g+1, err)
		}

		groups[g] = make([]Share, len(memberValues))
		for m, value := range memberValues {
			groups[g][m] = Share{
				Identifier:      identifier,
				GroupThreshold:  spec.GroupThreshold,
				GroupCount:      byte(len(spec.Groups)),
				GroupIndex:      byte(g),
				MemberThreshold: groupSpec.MemberThreshold,
				MemberIndex:     byte(m),
				Value:           value,
			}
		}
	}

	return groups, nil
}

// Combine recovers the secret from a set of shares produced by one Split
// call. It requires the group threshold of groups to each reach their
// member threshold; surplus shares are accepted and ignored. Shares from
// different split operations, conflicting duplicates, and inconsistent
// metadata are rejected, and a failed integrity check is reported as
// ErrChecksumMismatch rather than returning a wrong secret.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares provided", ErrInsufficientShares)
	}

	for i := range shares {
		if err := shares[i].validateHeader(); err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
	}

	first := shares[0]
	for i, share := range shares[1:] {
		if share.Identifier != first.Identifier {
			return nil, fmt.Errorf("%w: identifiers %04x and %04x",
				ErrMixedShareSets, first.Identifier, share.Identifier)
		}
		if share.GroupThreshold != first.GroupThreshold || share.GroupCount != first.GroupCount {
			return nil, fmt.Errorf("%w: share %d disagrees on group threshold or count",
				ErrInconsistentParameters, i+2)
		}
		if len(share.Value) != len(first.Value) {
			return nil, fmt.Errorf("%w: share %d value length %d, expected %d",
				ErrInconsistentParameters, i+2, len(share.Value), len(first.Value))
		}
	}

	// Partition by group, deduplicating by member index within each group.
	type memberSet struct {
		threshold byte
		values    map[byte][]byte
	}
	groups := make(map[byte]*memberSet)

	for _, share := range shares {
		set, ok := groups[share.GroupIndex]
		if !ok {
			set = &memberSet{
				threshold: share.MemberThreshold,
				values:    make(map[byte][]byte),
			}
			groups[share.GroupIndex] = set
		}

		if share.MemberThreshold != set.threshold {
			return nil, fmt.Errorf("%w: group %d shares disagree on member threshold",
				ErrInconsistentParameters, share.GroupIndex+1)
		}

		if existing, ok := set.values[share.MemberIndex]; ok {
			if !secure.ConstantTimeCompare(existing, share.Value) {
				return nil, fmt.Errorf("%w: group %d member %d has conflicting values",
					ErrDuplicateShare, share.GroupIndex+1, share.MemberIndex+1)
			}
			continue
		}
		set.values[share.MemberIndex] = share.Value
	}

	// Recombine every group that reached its member threshold. Iterate in
	// index order so that which groups feed the outer recombination is
	// deterministic.
	groupIndices := make([]byte, 0, len(groups))
	for idx := range groups {
		groupIndices = append(groupIndices, idx)
	}
	sort.Slice(groupIndices, func(i, j int) bool { return groupIndices[i] < groupIndices[j] })

	groupPoints := make([]point, 0, len(groups))
	for _, idx := range groupIndices {
		set := groups[idx]
		if len(set.values) < int(set.threshold) {
			continue
		}

		members := make([]point, 0, len(set.values))
		for memberIdx, value := range set.values {
			members = append(members, point{x: memberIdx + 1, y: value})
		}

		groupSecret, err := recombineBuffer(set.threshold, members)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", idx+1, err)
		}
		groupPoints = append(groupPoints, point{x: idx + 1, y: groupSecret})
	}
	defer func() {
		for _, gp := range groupPoints {
			secure.Zero(gp.y)
		}
	}()

	if len(groupPoints) < int(first.GroupThreshold) {
		return nil, fmt.Errorf("%w: %d of %d required groups qualify",
			ErrInsufficientShares, len(groupPoints), first.GroupThreshold)
	}

	extended, err := recombineBuffer(first.GroupThreshold, groupPoints)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(extended)

	secretLen := len(extended) - extensionLen
	if err := validateSecretLen(secretLen); err != nil {
		return nil, err
	}
	if !verifyExtended(extended) {
		return nil, fmt.Errorf("%w: recovered secret failed verification", ErrChecksumMismatch)
	}

	secret := make([]byte, secretLen)
	copy(secret, extended)
	return secret, nil
}

// SplitBytes splits secret and serializes every share, returned grouped
// in spec order.
func SplitBytes(secret []byte, spec Spec, rng io.Reader) ([][][]byte, error) {
	groups, err := Split(secret, spec, rng)
	if err != nil {
		return nil, err
	}

	out := make([][][]byte, len(groups))
	for g, group := range groups {
		out[g] = make([][]byte, len(group))
		for m := range group {
			data, err := group[m].MarshalBinary()
			if err != nil {
				return nil, err
			}
			out[g][m] = data
		}
	}
	return out, nil
}

// CombineBytes parses serialized shares and recovers the secret.
func CombineBytes(shareBytes [][]byte) ([]byte, error) {
	shares := make([]Share, len(shareBytes))
	for i, data := range shareBytes {
		share, err := ParseShare(data)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		shares[i] = *share
	}
	return Combine(shares)
}

// newIdentifier draws a random 16-bit share set identifier from rng.
func newIdentifier(rng io.Reader) (uint16, error) {
	var buf [2]byte
	if err := fillRandom(rng, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func validateSecretLen(n int) error {
	if n < MinSecretLen || n > MaxSecretLen {
		return fmt.Errorf("%w: secret must be between %d and %d bytes, got %d",
			ErrInvalidParameters, MinSecretLen, MaxSecretLen, n)
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: secret length must be even, got %d", ErrInvalidParameters, n)
	}
	return nil
}
