// Package mnemonic wraps BIP-39 mnemonic handling: the secrets split by
// this tool are the entropy of a BIP-39 seed phrase.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	MinEntropyBits = 128
	MaxEntropyBits = 256
)

type Mnemonic struct {
	words []string
}

// NewMnemonic generates a random mnemonic with the given entropy size.
func NewMnemonic(entropyBits int) (*Mnemonic, error) {
	if entropyBits < MinEntropyBits || entropyBits > MaxEntropyBits {
		return nil, fmt.Errorf("entropy bits must be between %d and %d", MinEntropyBits, MaxEntropyBits)
	}

	if entropyBits%32 != 0 {
		return nil, fmt.Errorf("entropy bits must be a multiple of 32")
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	return &Mnemonic{words: strings.Split(phrase, " ")}, nil
}

// FromWords parses and validates an existing phrase.
func FromWords(words string) (*Mnemonic, error) {
	words = strings.Join(strings.Fields(words), " ")
	if !bip39.IsMnemonicValid(words) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	return &Mnemonic{words: strings.Split(words, " ")}, nil
}

// FromEntropy encodes raw entropy as a mnemonic.
func FromEntropy(entropy []byte) (*Mnemonic, error) {
	if len(entropy) < MinEntropyBits/8 || len(entropy) > MaxEntropyBits/8 {
		return nil, fmt.Errorf("entropy must be between %d and %d bytes", MinEntropyBits/8, MaxEntropyBits/8)
	}

	if len(entropy)%4 != 0 {
		return nil, fmt.Errorf("entropy length must be a multiple of 4")
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic from entropy: %w", err)
	}

	return &Mnemonic{words: strings.Split(phrase, " ")}, nil
}

func (m *Mnemonic) Words() string {
	return strings.Join(m.words, " ")
}

func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

// Entropy returns the raw entropy encoded by the phrase.
func (m *Mnemonic) Entropy() ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(m.Words())
	if err != nil {
		return nil, fmt.Errorf("failed to get entropy from mnemonic: %w", err)
	}
	return entropy, nil
}

// EntropyBitsFromWordCount maps a BIP-39 phrase length to its entropy size.
func EntropyBitsFromWordCount(wordCount int) (int, error) {
	switch wordCount {
	case 12:
		return 128, nil
	case 15:
		return 160, nil
	case 18:
		return 192, nil
	case 21:
		return 224, nil
	case 24:
		return 256, nil
	default:
		return 0, fmt.Errorf("invalid word count: %d", wordCount)
	}
}
