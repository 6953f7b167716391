package rasm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Assemble runs both passes over source text and returns the emitted
// binary, or the first AssemblyError encountered. It never returns a
// partial result.
func Assemble(source string) ([]byte, error) {
	lines, err := parseLines(source)
	if err != nil {
		return nil, err
	}
	return assembleLines(lines)
}

// AssembleFile reads path and assembles its contents.
func AssembleFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Assemble(string(data))
}

// assembleLines runs pass 2: it builds the constant and label symbol
// tables from the classified lines, then resolves every code line's four
// tokens into bytes.
func assembleLines(lines []sourceLine) ([]byte, error) {
	consts := map[string]string{}
	labels := map[string]byte{}
	var codeLines []sourceLine
	var codeLineIndex byte

	for _, ln := range lines {
		switch ln.kind {
		case lineConst:
			consts[ln.tagName] = ln.tagValue
		case lineLabel:
			if _, exists := labels[ln.tagName]; exists {
				return nil, &AssemblyError{Line: ln.number, Text: ln.original, Msg: fmt.Sprintf("label %q already exists", ln.tagName)}
			}
			labels[ln.tagName] = codeLineIndex * 4
		case lineCode:
			codeLines = append(codeLines, ln)
			codeLineIndex++
		}
	}

	result := make([]byte, 0, len(codeLines)*4)
	for _, ln := range codeLines {
		for _, tok := range ln.tokens {
			b, err := resolveToken(tok, consts, labels)
			if err != nil {
				return nil, &AssemblyError{Line: ln.number, Text: ln.original, Msg: err.Error()}
			}
			result = append(result, b)
		}
	}
	return result, nil
}

// resolveToken implements §4.3.3: split on '+', resolve each sub-token
// through the constant table, then labels, then the dictionary, then as a
// numeric literal, and sum with 8-bit wrapping.
func resolveToken(token string, consts map[string]string, labels map[string]byte) (byte, error) {
	var sum byte
	for _, sub := range strings.Split(token, "+") {
		v, err := resolveSubToken(sub, consts, labels)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func resolveSubToken(sub string, consts map[string]string, labels map[string]byte) (byte, error) {
	resolved, err := chaseConstant(sub, consts)
	if err != nil {
		return 0, err
	}
	if addr, ok := labels[resolved]; ok {
		return addr, nil
	}
	if v, ok := lookupDictionary(resolved); ok {
		return v, nil
	}
	return decodeNum(resolved)
}

// chaseConstant follows the constant table until it reaches a token with no
// further binding, reporting an error rather than looping forever if the
// chain cycles back on itself.
func chaseConstant(token string, consts map[string]string) (string, error) {
	seen := map[string]bool{}
	cur := token
	for {
		next, ok := consts[cur]
		if !ok {
			return cur, nil
		}
		if seen[cur] {
			return "", fmt.Errorf("constant chain starting at %q cycles back on itself", token)
		}
		seen[cur] = true
		cur = next
	}
}

// decodeNum parses a numeric literal: 0X hex, 0O octal, 0B binary, or
// base-10. The value must fit in 8 bits unsigned.
func decodeNum(s string) (byte, error) {
	base, digits := 10, s
	switch {
	case strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0O"):
		base, digits = 8, s[2:]
	case strings.HasPrefix(s, "0B"):
		base, digits = 2, s[2:]
	}

	v, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid value", s)
	}
	return byte(v), nil
}
