package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHex(t *testing.T) {
	assert.NoError(t, ValidateHex("deadbeef"))
	assert.NoError(t, ValidateHex("  00FF  "))
	assert.Error(t, ValidateHex(""))
	assert.Error(t, ValidateHex("abc"))
	assert.Error(t, ValidateHex("xyz0"))
}

func TestValidateGroupSpec(t *testing.T) {
	valid := []string{
		"2of3",
		"1of1",
		"2of3,3of5",
		"2of3,4of9,3of5",
	}
	for _, spec := range valid {
		assert.NoError(t, ValidateGroupSpec(spec), spec)
	}

	invalid := []string{
		"",
		"2of",
		"of3",
		"2/3",
		"2of3,",
		",2of3",
		"2of3 3of5",
		"two of three",
	}
	for _, spec := range invalid {
		assert.Error(t, ValidateGroupSpec(spec), spec)
	}
}

func TestValidateMnemonicShape(t *testing.T) {
	twelve := "able able able able able able able able able able able able"
	assert.NoError(t, ValidateMnemonicShape(twelve))
	assert.Error(t, ValidateMnemonicShape(""))
	assert.Error(t, ValidateMnemonicShape("one two three"))
}
