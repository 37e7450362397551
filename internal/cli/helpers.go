package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/term"

	"github.com/martinivanov/sskr-tool/internal/validation"
	"github.com/martinivanov/sskr-tool/pkg/bytewords"
	"github.com/martinivanov/sskr-tool/pkg/sskr"
)

// sskrTag is the CBOR tag for SSKR share byte strings (bcr-2020-011).
const sskrTag = 309

// parseSpec parses a group specification string such as "2of3,3of5"
// together with the group threshold into an sskr.Spec.
func parseSpec(spec string, groupThreshold int) (sskr.Spec, error) {
	if err := validation.ValidateGroupSpec(spec); err != nil {
		return sskr.Spec{}, err
	}

	parts := strings.Split(strings.TrimSpace(spec), ",")
	groups := make([]sskr.GroupSpec, len(parts))

	for i, part := range parts {
		mn := strings.SplitN(part, "of", 2)

		m, err := strconv.Atoi(mn[0])
		if err != nil || m < 1 || m > sskr.MaxShareCount {
			return sskr.Spec{}, fmt.Errorf("invalid threshold in group %q", part)
		}

		n, err := strconv.Atoi(mn[1])
		if err != nil || n < 1 || n > sskr.MaxShareCount {
			return sskr.Spec{}, fmt.Errorf("invalid count in group %q", part)
		}

		if m > n {
			return sskr.Spec{}, fmt.Errorf("invalid group %q: %d is greater than %d", part, m, n)
		}

		groups[i] = sskr.GroupSpec{
			MemberThreshold: byte(m),
			MemberCount:     byte(n),
		}
	}

	if groupThreshold < 1 || groupThreshold > len(groups) {
		return sskr.Spec{}, fmt.Errorf("group threshold must be between 1 and %d, got %d",
			len(groups), groupThreshold)
	}

	result := sskr.Spec{
		GroupThreshold: byte(groupThreshold),
		Groups:         groups,
	}
	if err := result.Validate(); err != nil {
		return sskr.Spec{}, err
	}

	return result, nil
}

// encodeShareString serializes a share, wraps it in a tagged CBOR byte
// string, and renders it as bytewords.
func encodeShareString(share *sskr.Share, minimal bool) (string, error) {
	data, err := share.MarshalBinary()
	if err != nil {
		return "", err
	}

	wrapped, err := cbor.Marshal(cbor.Tag{Number: sskrTag, Content: data})
	if err != nil {
		return "", fmt.Errorf("failed to encode share as CBOR: %w", err)
	}

	if minimal {
		return bytewords.EncodeMinimal(wrapped), nil
	}
	return bytewords.Encode(wrapped), nil
}

// decodeShareBytes reverses encodeShareString down to the raw share bytes.
func decodeShareBytes(s string) ([]byte, error) {
	wrapped, err := bytewords.Decode(s)
	if err != nil {
		return nil, err
	}

	var tag cbor.RawTag
	if err := cbor.Unmarshal(wrapped, &tag); err != nil {
		return nil, fmt.Errorf("share is not a CBOR tagged value: %w", err)
	}
	if tag.Number != sskrTag {
		return nil, fmt.Errorf("unexpected CBOR tag %d, want %d", tag.Number, sskrTag)
	}

	var data []byte
	if err := cbor.Unmarshal(tag.Content, &data); err != nil {
		return nil, fmt.Errorf("share tag does not contain a byte string: %w", err)
	}

	return data, nil
}

// readShareLines reads byteword share strings from a file, one per line.
// Blank lines and lines starting with '#' are skipped.
func readShareLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read shares file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shares file: %w", err)
	}

	return lines, nil
}

// collectShareLines interactively collects share strings from stdin until
// an empty line is entered.
func collectShareLines() ([]string, error) {
	interactive := term.IsTerminal(int(syscall.Stdin))
	if interactive {
		yellow := color.New(color.FgYellow)
		yellow.Println("Enter shares one per line; finish with an empty line.")
	}

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			fmt.Printf("Share %d: ", len(lines)+1)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// displayShareGroups prints the byteword shares grouped, with thresholds.
func displayShareGroups(shareStrings [][]string, spec sskr.Spec) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	green.Printf("SSKR shares - need to recover at least %d group(s) to recover the mnemonic\n\n",
		spec.GroupThreshold)

	for g, group := range shareStrings {
		cyan.Printf("Group %d - need %d of %d shares to recover the group\n",
			g+1, spec.Groups[g].MemberThreshold, spec.Groups[g].MemberCount)
		for m, share := range group {
			fmt.Printf("  %2d: %s\n", m+1, share)
		}
		fmt.Println()
	}

	red.Println("⚠️  SECURITY WARNING:")
	fmt.Println("- Store each share in a different secure location")
	fmt.Println("- Never store a quorum of shares together or online")
	fmt.Println("- Test recovery with minimum shares before relying on this backup")
}
