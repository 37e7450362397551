// Package validation contains input validators for the CLI layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	hexPattern  = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	specPattern = regexp.MustCompile(`^(\d+of\d+,)*\d+of\d+$`)
)

// ValidateHex checks that input is a non-empty even-length hex string.
func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// ValidateGroupSpec checks the shape of a group specification string such
// as "2of3,3of5". Threshold bounds are checked later when parsing.
func ValidateGroupSpec(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return fmt.Errorf("group spec cannot be empty")
	}

	if !specPattern.MatchString(spec) {
		return fmt.Errorf("invalid group spec %q, expected format: MofN,MofN,...", spec)
	}

	return nil
}

// ValidateMnemonicShape checks that words is a plausible BIP-39 phrase
// length. Dictionary and checksum validation happens in the mnemonic
// package.
func ValidateMnemonicShape(words string) error {
	words = strings.TrimSpace(words)
	if words == "" {
		return fmt.Errorf("mnemonic cannot be empty")
	}

	switch len(strings.Fields(words)) {
	case 12, 15, 18, 21, 24:
		return nil
	default:
		return fmt.Errorf("mnemonic must have 12, 15, 18, 21, or 24 words, got %d",
			len(strings.Fields(words)))
	}
}
