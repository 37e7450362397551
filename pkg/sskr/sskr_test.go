package sskr

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func flatten(groups [][]Share) []Share {
	var shares []Share
	for _, group := range groups {
		shares = append(shares, group...)
	}
	return shares
}

func cloneShare(s Share) Share {
	value := make([]byte, len(s.Value))
	copy(value, s.Value)
	s.Value = value
	return s
}

func TestSplitSingleGroupRoundTrip(t *testing.T) {
	// Concrete scenario: 16 zero bytes, one 2-of-3 group, group threshold 1.
	secret := make([]byte, 16)
	spec := SimpleSpec(2, 3)

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0]) != 3 {
		t.Fatalf("expected 1 group of 3 shares, got %v", groups)
	}

	// Any 2 of the 3 shares recover the secret.
	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	for _, pair := range pairs {
		got, err := Combine([]Share{groups[0][pair[0]], groups[0][pair[1]]})
		if err != nil {
			t.Fatalf("combine shares %v failed: %v", pair, err)
		}
		if !bytes.Equal(got, secret) {
			t.Fatalf("combine shares %v = %x, want all zeros", pair, got)
		}
	}

	// A single share is insufficient.
	_, err = Combine([]Share{groups[0][0]})
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestSplitTwoGroupsRoundTrip(t *testing.T) {
	// Concrete scenario: groups 2-of-3 and 3-of-5, group threshold 2.
	secret := testSecret(t, 32)
	spec := Spec{
		GroupThreshold: 2,
		Groups: []GroupSpec{
			{MemberThreshold: 2, MemberCount: 3},
			{MemberThreshold: 3, MemberCount: 5},
		},
	}

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	// 2 shares from the first group plus 3 from the second succeed.
	qualifying := []Share{
		groups[0][0], groups[0][2],
		groups[1][1], groups[1][3], groups[1][4],
	}
	got, err := Combine(qualifying)
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("combine = %x, want %x", got, secret)
	}

	// Only one qualifying group is one short of the group threshold.
	oneGroup := []Share{groups[1][0], groups[1][1], groups[1][2]}
	_, err = Combine(oneGroup)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}

	// A full first group plus an under-threshold second group also fails.
	underThreshold := []Share{
		groups[0][0], groups[0][1], groups[0][2],
		groups[1][0], groups[1][1],
	}
	_, err = Combine(underThreshold)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestCombineSubsetConsistency(t *testing.T) {
	secret := testSecret(t, 16)
	spec := Spec{
		GroupThreshold: 2,
		Groups: []GroupSpec{
			{MemberThreshold: 2, MemberCount: 4},
			{MemberThreshold: 2, MemberCount: 4},
			{MemberThreshold: 3, MemberCount: 3},
		},
	}

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	subsets := [][]Share{
		{groups[0][0], groups[0][1], groups[1][2], groups[1][3]},
		{groups[0][2], groups[0][3], groups[2][0], groups[2][1], groups[2][2]},
		{groups[1][0], groups[1][1], groups[2][0], groups[2][1], groups[2][2]},
	}

	for i, subset := range subsets {
		got, err := Combine(subset)
		if err != nil {
			t.Fatalf("subset %d failed: %v", i, err)
		}
		if !bytes.Equal(got, secret) {
			t.Fatalf("subset %d = %x, want %x", i, got, secret)
		}
	}
}

func TestCombineSurplusSharesAccepted(t *testing.T) {
	secret := testSecret(t, 16)
	spec := Spec{
		GroupThreshold: 1,
		Groups: []GroupSpec{
			{MemberThreshold: 2, MemberCount: 3},
			{MemberThreshold: 2, MemberCount: 3},
		},
	}

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	// All shares from all groups, well beyond every threshold.
	got, err := Combine(flatten(groups))
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("combine = %x, want %x", got, secret)
	}
}

func TestSplitIdentifiersDiffer(t *testing.T) {
	secret := testSecret(t, 16)
	spec := SimpleSpec(2, 3)

	first, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("first split failed: %v", err)
	}

	// 16-bit identifiers can collide by chance; retry a few times to get
	// a distinct second set.
	var second [][]Share
	for attempt := 0; attempt < 5; attempt++ {
		second, err = Split(secret, spec, rand.Reader)
		if err != nil {
			t.Fatalf("second split failed: %v", err)
		}
		if second[0][0].Identifier != first[0][0].Identifier {
			break
		}
	}
	if second[0][0].Identifier == first[0][0].Identifier {
		t.Fatal("identifiers repeatedly collided across split operations")
	}

	mixed := []Share{first[0][0], second[0][1]}
	_, err = Combine(mixed)
	if !errors.Is(err, ErrMixedShareSets) {
		t.Fatalf("expected ErrMixedShareSets, got %v", err)
	}
}

func TestCombineCorruptedShareDetected(t *testing.T) {
	secret := testSecret(t, 16)
	spec := SimpleSpec(2, 3)

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	// Corrupt one payload byte of a share in a minimal qualifying set.
	corrupted := cloneShare(groups[0][0])
	corrupted.Value[5] ^= 0x01

	got, err := Combine([]Share{corrupted, groups[0][1]})
	if err == nil {
		t.Fatalf("corrupted share produced a secret: %x", got)
	}
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestCombineDuplicateShares(t *testing.T) {
	secret := testSecret(t, 16)
	spec := SimpleSpec(2, 3)

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	// An identical duplicate deduplicates; the set is still one short.
	_, err = Combine([]Share{groups[0][0], cloneShare(groups[0][0])})
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares for identical duplicate, got %v", err)
	}

	// A conflicting value for the same member slot is rejected.
	conflicting := cloneShare(groups[0][0])
	conflicting.Value[0] ^= 0xFF
	_, err = Combine([]Share{groups[0][0], conflicting, groups[0][1]})
	if !errors.Is(err, ErrDuplicateShare) {
		t.Fatalf("expected ErrDuplicateShare, got %v", err)
	}
}

func TestCombineInconsistentParameters(t *testing.T) {
	secret := testSecret(t, 16)
	spec := SimpleSpec(2, 3)

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	tampered := cloneShare(groups[0][1])
	tampered.MemberThreshold = 3
	_, err = Combine([]Share{groups[0][0], tampered})
	if !errors.Is(err, ErrInconsistentParameters) {
		t.Fatalf("expected ErrInconsistentParameters for member threshold, got %v", err)
	}

	tampered = cloneShare(groups[0][1])
	tampered.GroupCount = 4
	tampered.GroupThreshold = 2
	_, err = Combine([]Share{groups[0][0], tampered})
	if !errors.Is(err, ErrInconsistentParameters) {
		t.Fatalf("expected ErrInconsistentParameters for group parameters, got %v", err)
	}
}

func TestSplitInvalidParameters(t *testing.T) {
	valid := SimpleSpec(2, 3)

	cases := []struct {
		name   string
		secret []byte
		spec   Spec
	}{
		{"secret too short", make([]byte, 8), valid},
		{"secret too long", make([]byte, 40), valid},
		{"odd secret length", make([]byte, 17), valid},
		{"no groups", make([]byte, 16), Spec{GroupThreshold: 1}},
		{"zero group threshold", make([]byte, 16), Spec{
			Groups: []GroupSpec{{MemberThreshold: 2, MemberCount: 3}},
		}},
		{"group threshold above count", make([]byte, 16), Spec{
			GroupThreshold: 2,
			Groups:         []GroupSpec{{MemberThreshold: 2, MemberCount: 3}},
		}},
		{"member threshold above count", make([]byte, 16), Spec{
			GroupThreshold: 1,
			Groups:         []GroupSpec{{MemberThreshold: 4, MemberCount: 3}},
		}},
		{"1-of-N group", make([]byte, 16), Spec{
			GroupThreshold: 1,
			Groups:         []GroupSpec{{MemberThreshold: 1, MemberCount: 3}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Split(tc.secret, tc.spec, rand.Reader)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestSplitRandomnessUnavailable(t *testing.T) {
	_, err := Split(make([]byte, 16), SimpleSpec(2, 3), failingReader{})
	if !errors.Is(err, ErrRandomnessUnavailable) {
		t.Fatalf("expected ErrRandomnessUnavailable, got %v", err)
	}
}

func TestCombineNoShares(t *testing.T) {
	_, err := Combine(nil)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestCombineMemberThresholdOne(t *testing.T) {
	// 1-of-1 groups pass the group secret through verbatim.
	secret := testSecret(t, 16)
	spec := Spec{
		GroupThreshold: 2,
		Groups: []GroupSpec{
			{MemberThreshold: 1, MemberCount: 1},
			{MemberThreshold: 1, MemberCount: 1},
			{MemberThreshold: 2, MemberCount: 2},
		},
	}

	groups, err := Split(secret, spec, rand.Reader)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	got, err := Combine([]Share{groups[0][0], groups[1][0]})
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("combine = %x, want %x", got, secret)
	}
}

func TestVerifyExtended(t *testing.T) {
	secret := testSecret(t, 16)

	extended, err := extendSecret(secret, rand.Reader)
	if err != nil {
		t.Fatalf("extend failed: %v", err)
	}
	if len(extended) != len(secret)+extensionLen {
		t.Fatalf("extended length = %d, want %d", len(extended), len(secret)+extensionLen)
	}
	if !bytes.Equal(extended[:len(secret)], secret) {
		t.Fatal("extended secret does not start with the secret")
	}
	if !verifyExtended(extended) {
		t.Fatal("freshly extended secret failed verification")
	}

	// Any single-byte change breaks verification.
	for i := range extended {
		extended[i] ^= 0x01
		if verifyExtended(extended) {
			t.Fatalf("verification passed with byte %d corrupted", i)
		}
		extended[i] ^= 0x01
	}
}
