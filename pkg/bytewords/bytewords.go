// Package bytewords implements the Bytewords encoding (bcr-2020-012):
// every byte maps to one of 256 four-letter English words, and a 4-byte
// CRC-32 checksum of the payload is appended before encoding.
//
// Two styles are supported: standard (full words joined by spaces) and
// minimal (the first and last letter of each word, concatenated). The
// word list is constructed so that first+last letter pairs are unique,
// which makes the minimal style unambiguous.
package bytewords

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

const wordLen = 4

// checksumLen is the number of checksum bytes appended to the payload.
const checksumLen = 4

var words = [256]string{
	"able", "acid", "also", "apex", "aqua", "arch", "atom", "aunt",
	"away", "axis", "back", "bald", "barn", "belt", "beta", "bias",
	"blue", "body", "brag", "brew", "bulb", "buzz", "calm", "cash",
	"cats", "chef", "city", "claw", "code", "cola", "cook", "cost",
	"crux", "curl", "cusp", "cyan", "dark", "data", "days", "deli",
	"dice", "diet", "door", "down", "draw", "drop", "drum", "dull",
	"duty", "each", "easy", "echo", "edge", "epic", "even", "exam",
	"exit", "eyes", "fact", "fair", "fern", "figs", "film", "fish",
	"fizz", "flap", "flew", "flux", "foxy", "free", "frog", "fuel",
	"fund", "gala", "game", "gear", "gems", "gift", "girl", "glow",
	"good", "gray", "grim", "guru", "gush", "gyro", "half", "hang",
	"hard", "hawk", "heat", "help", "high", "hill", "holy", "hope",
	"horn", "huts", "iced", "idea", "idle", "inch", "inky", "into",
	"iris", "iron", "item", "jade", "jazz", "join", "jolt", "jowl",
	"judo", "jugs", "jump", "junk", "jury", "keep", "keno", "kept",
	"keys", "kick", "kiln", "king", "kite", "kiwi", "knob", "lamb",
	"lava", "lazy", "leaf", "legs", "liar", "limp", "lion", "list",
	"logo", "loud", "love", "luau", "luck", "lung", "main", "many",
	"math", "maze", "memo", "menu", "meow", "mild", "mint", "miss",
	"monk", "nail", "navy", "need", "news", "next", "noon", "note",
	"numb", "obey", "oboe", "omit", "onyx", "open", "oval", "owls",
	"paid", "part", "peck", "play", "plus", "poem", "pool", "pose",
	"puff", "puma", "purr", "quad", "quiz", "race", "ramp", "real",
	"redo", "rich", "road", "rock", "roof", "ruby", "ruin", "runs",
	"rust", "safe", "saga", "scar", "sets", "silk", "skew", "slot",
	"soap", "solo", "song", "stub", "surf", "swan", "taco", "task",
	"taxi", "tent", "tied", "time", "tiny", "toil", "tomb", "toys",
	"trip", "tuna", "twin", "ugly", "undo", "unit", "urge", "user",
	"vast", "very", "veto", "vial", "vibe", "view", "visa", "void",
	"vows", "wall", "wand", "warm", "wasp", "wave", "waxy", "webs",
	"what", "when", "whiz", "wolf", "work", "yank", "yawn", "yell",
	"yoga", "yurt", "zaps", "zero", "zest", "zinc", "zone", "zoom",
}

var (
	wordLookup    map[string]byte
	minimalLookup map[string]byte
)

func init() {
	wordLookup = make(map[string]byte, 256)
	minimalLookup = make(map[string]byte, 256)
	for i, w := range words {
		wordLookup[w] = byte(i)
		minimalLookup[minimalWord(w)] = byte(i)
	}
}

func minimalWord(w string) string {
	return w[:1] + w[wordLen-1:]
}

func checksum(data []byte) [checksumLen]byte {
	var sum [checksumLen]byte
	binary.BigEndian.PutUint32(sum[:], crc32.ChecksumIEEE(data))
	return sum
}

// Encode encodes data in the standard style: full words joined by spaces,
// with the CRC-32 checksum words appended.
func Encode(data []byte) string {
	sum := checksum(data)
	parts := make([]string, 0, len(data)+checksumLen)
	for _, b := range data {
		parts = append(parts, words[b])
	}
	for _, b := range sum {
		parts = append(parts, words[b])
	}
	return strings.Join(parts, " ")
}

// EncodeMinimal encodes data in the minimal style: two letters per byte,
// no separators, checksum included.
func EncodeMinimal(data []byte) string {
	sum := checksum(data)
	var sb strings.Builder
	sb.Grow((len(data) + checksumLen) * 2)
	for _, b := range data {
		sb.WriteString(minimalWord(words[b]))
	}
	for _, b := range sum {
		sb.WriteString(minimalWord(words[b]))
	}
	return sb.String()
}

// Decode decodes either style, detecting the style from the input,
// verifies the trailing checksum, and returns the payload without it.
func Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("bytewords: empty input")
	}

	var all []byte
	var err error
	if strings.ContainsAny(s, " \t") {
		all, err = decodeWords(strings.Fields(s))
	} else {
		all, err = decodeMinimal(s)
	}
	if err != nil {
		return nil, err
	}

	if len(all) < checksumLen+1 {
		return nil, fmt.Errorf("bytewords: input too short: %d bytes including checksum", len(all))
	}

	payload := all[:len(all)-checksumLen]
	sum := checksum(payload)
	if !bytes.Equal(sum[:], all[len(payload):]) {
		return nil, errors.New("bytewords: checksum mismatch")
	}

	return payload, nil
}

func decodeWords(fields []string) ([]byte, error) {
	out := make([]byte, len(fields))
	for i, w := range fields {
		b, ok := wordLookup[strings.ToLower(w)]
		if !ok {
			return nil, fmt.Errorf("bytewords: not a valid byteword: %q", w)
		}
		out[i] = b
	}
	return out, nil
}

func decodeMinimal(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("bytewords: minimal input has odd length %d", len(s))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		b, ok := minimalLookup[strings.ToLower(s[i:i+2])]
		if !ok {
			return nil, fmt.Errorf("bytewords: not a valid minimal byteword: %q", s[i:i+2])
		}
		out[i/2] = b
	}
	return out, nil
}
