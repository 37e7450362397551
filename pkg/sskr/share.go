package sskr

import (
	"encoding/binary"
	"fmt"
)

const (
	// MinSecretLen is the minimum secret length in bytes (128 bits)
	MinSecretLen = 16

	// MaxSecretLen is the maximum secret length in bytes (256 bits)
	MaxSecretLen = 32

	// MaxGroups is the maximum number of groups in a split
	MaxGroups = 16

	// MaxShareCount is the maximum number of shares at either level
	MaxShareCount = 16

	// HeaderLen is the length of the serialized share header
	HeaderLen = 5

	// minShareLen is the smallest valid serialized share: header plus the
	// extension of the smallest allowed secret.
	minShareLen = HeaderLen + MinSecretLen + extensionLen
)

// GroupSpec describes one group's internal sharing policy.
type GroupSpec struct {
	MemberThreshold byte `json:"member_threshold"`
	MemberCount     byte `json:"member_count"`
}

// Spec describes a full two-level split: an ordered list of groups and the
// number of groups required for recovery.
type Spec struct {
	GroupThreshold byte        `json:"group_threshold"`
	Groups         []GroupSpec `json:"groups"`
}

// Validate checks the split specification against the scheme bounds.
func (s Spec) Validate() error {
	if len(s.Groups) == 0 {
		return fmt.Errorf("%w: at least one group is required", ErrInvalidParameters)
	}
	if len(s.Groups) > MaxGroups {
		return fmt.Errorf("%w: maximum %d groups allowed, got %d",
			ErrInvalidParameters, MaxGroups, len(s.Groups))
	}
	if s.GroupThreshold == 0 {
		return fmt.Errorf("%w: group threshold must be at least 1", ErrInvalidParameters)
	}
	if int(s.GroupThreshold) > len(s.Groups) {
		return fmt.Errorf("%w: group threshold %d exceeds number of groups %d",
			ErrInvalidParameters, s.GroupThreshold, len(s.Groups))
	}

	for i, group := range s.Groups {
		if group.MemberCount == 0 {
			return fmt.Errorf("%w: group %d: member count must be at least 1",
				ErrInvalidParameters, i+1)
		}
		if group.MemberCount > MaxShareCount {
			return fmt.Errorf("%w: group %d: maximum %d members allowed, got %d",
				ErrInvalidParameters, i+1, MaxShareCount, group.MemberCount)
		}
		if group.MemberThreshold == 0 {
			return fmt.Errorf("%w: group %d: member threshold must be at least 1",
				ErrInvalidParameters, i+1)
		}
		if group.MemberThreshold > group.MemberCount {
			return fmt.Errorf("%w: group %d: threshold %d cannot exceed count %d",
				ErrInvalidParameters, i+1, group.MemberThreshold, group.MemberCount)
		}
		// A 1-of-N group with N > 1 hands out the group secret verbatim
		// N times, so it adds copies without adding safety.
		if group.MemberThreshold == 1 && group.MemberCount > 1 {
			return fmt.Errorf("%w: group %d: 1-of-%d groups are not supported",
				ErrInvalidParameters, i+1, group.MemberCount)
		}
	}

	return nil
}

// SimpleSpec creates a single-group threshold-of-count spec.
func SimpleSpec(threshold, count byte) Spec {
	return Spec{
		GroupThreshold: 1,
		Groups:         []GroupSpec{{MemberThreshold: threshold, MemberCount: count}},
	}
}

// Share is one distributable unit of a split. All shares of one split
// operation carry the same Identifier, GroupThreshold and GroupCount;
// indices are zero-based.
type Share struct {
	Identifier      uint16
	GroupThreshold  byte
	GroupCount      byte
	GroupIndex      byte
	MemberThreshold byte
	MemberIndex     byte
	Value           []byte
}

// MarshalBinary serializes the share as a 5-byte header followed by the
// share value.
//
// Header layout, matching SSKR (bcr-2020-011):
//
//	bytes 0-1  identifier, big endian
//	byte  2    (group threshold - 1) << 4 | (group count - 1)
//	byte  3    group index << 4 | (member threshold - 1)
//	byte  4    reserved (0) << 4 | member index
func (s *Share) MarshalBinary() ([]byte, error) {
	if err := s.validateHeader(); err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderLen+len(s.Value))
	binary.BigEndian.PutUint16(buf[0:2], s.Identifier)
	buf[2] = (s.GroupThreshold-1)<<4 | (s.GroupCount - 1)
	buf[3] = s.GroupIndex<<4 | (s.MemberThreshold - 1)
	buf[4] = s.MemberIndex
	copy(buf[HeaderLen:], s.Value)
	return buf, nil
}

// ParseShare deserializes a share produced by MarshalBinary. Truncated
// buffers, non-zero reserved bits, and inconsistent header fields are
// rejected.
func ParseShare(data []byte) (*Share, error) {
	if len(data) < minShareLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrTruncatedShare, len(data), minShareLen)
	}

	share := &Share{
		Identifier:      binary.BigEndian.Uint16(data[0:2]),
		GroupThreshold:  data[2]>>4 + 1,
		GroupCount:      data[2]&0xF + 1,
		GroupIndex:      data[3] >> 4,
		MemberThreshold: data[3]&0xF + 1,
		MemberIndex:     data[4] & 0xF,
	}

	if reserved := data[4] >> 4; reserved != 0 {
		return nil, fmt.Errorf("%w: non-zero reserved bits %#x", ErrInvalidParameters, reserved)
	}
	if err := share.validateHeader(); err != nil {
		return nil, err
	}

	share.Value = make([]byte, len(data)-HeaderLen)
	copy(share.Value, data[HeaderLen:])
	return share, nil
}

func (s *Share) validateHeader() error {
	if s.GroupCount == 0 || s.GroupCount > MaxGroups {
		return fmt.Errorf("%w: group count %d", ErrInvalidParameters, s.GroupCount)
	}
	if s.GroupThreshold == 0 || s.GroupThreshold > s.GroupCount {
		return fmt.Errorf("%w: group threshold %d of %d groups",
			ErrInvalidParameters, s.GroupThreshold, s.GroupCount)
	}
	if s.GroupIndex >= s.GroupCount {
		return fmt.Errorf("%w: group index %d out of range for %d groups",
			ErrInvalidParameters, s.GroupIndex, s.GroupCount)
	}
	if s.MemberThreshold == 0 || s.MemberThreshold > MaxShareCount {
		return fmt.Errorf("%w: member threshold %d", ErrInvalidParameters, s.MemberThreshold)
	}
	if s.MemberIndex >= MaxShareCount {
		return fmt.Errorf("%w: member index %d", ErrInvalidParameters, s.MemberIndex)
	}
	return nil
}
