package rasm

import (
	"fmt"
	"strings"
)

// splitCodeLine turns one code line's text into zero or more full 4-token
// instruction lines. Outside v2 mode the line must already be exactly four
// tokens. In v2 mode it may be a stack macro (which expands to several
// lines), or a short mnemonic plus "*"-sugared operands that this function
// pads and rewrites into long form.
func splitCodeLine(code string, v2 bool) ([][4]string, error) {
	fields := strings.Fields(code)
	if len(fields) == 0 {
		return nil, nil
	}

	if v2 {
		if fields[0] == "!ST<" || fields[0] == "!ST>" {
			return expandStackMacro(fields[0], fields[1:]), nil
		}
		var err error
		fields, err = applyV2Sugar(fields)
		if err != nil {
			return nil, err
		}
	}

	if len(fields) != 4 {
		return nil, fmt.Errorf("expected 4 tokens, got %d", len(fields))
	}
	return [][4]string{{fields[0], fields[1], fields[2], fields[3]}}, nil
}

// applyV2Sugar strips a leading "*" from the first two given operands,
// folding it into an "+IM1"/"+IM2" suffix on the opcode token, then pads
// short mnemonics out to the full 4-token form.
func applyV2Sugar(fields []string) ([]string, error) {
	mnemonic := fields[0]
	operands := append([]string(nil), fields[1:]...)

	var suffix string
	for i := 0; i < len(operands) && i < 2; i++ {
		if strings.HasPrefix(operands[i], "*") {
			operands[i] = strings.TrimPrefix(operands[i], "*")
			if i == 0 {
				suffix += "+IM1"
			} else {
				suffix += "+IM2"
			}
		}
	}

	if padded, ok := padShortMnemonic(mnemonic, operands); ok {
		padded[0] += suffix
		return padded, nil
	}

	return append([]string{mnemonic + suffix}, operands...), nil
}

// padShortMnemonic expands the fixed set of v2 short forms (spec §4.3.5)
// into their zero-padded long form. It reports false for anything else,
// including mnemonics written out in full already.
func padShortMnemonic(mnemonic string, operands []string) ([]string, bool) {
	switch mnemonic {
	case "JMP":
		if len(operands) == 1 {
			return []string{mnemonic, "0", "0", operands[0]}, true
		}
	case "MOV":
		if len(operands) == 2 {
			return []string{mnemonic, operands[0], "0", operands[1]}, true
		}
	case "NOOP", "HALT", "RET":
		if len(operands) == 0 {
			return []string{mnemonic, "0", "0", "0"}, true
		}
	case "CALL":
		if len(operands) == 1 {
			return []string{mnemonic, operands[0], "0", "0"}, true
		}
	case "S_POP":
		if len(operands) == 1 {
			return []string{mnemonic, "0", "0", operands[0]}, true
		}
	case "S_PUSH":
		if len(operands) == 1 {
			return []string{mnemonic, operands[0], "0", "0"}, true
		}
	}
	return nil, false
}

// expandStackMacro implements !ST< (push each argument, in order, as an
// immediate) and !ST> (pop each argument's value back, in reverse order, so
// the restoration matches the LIFO discipline of the pushes that produced
// it).
func expandStackMacro(name string, args []string) [][4]string {
	var lines [][4]string
	switch name {
	case "!ST<":
		for _, a := range args {
			lines = append(lines, [4]string{"S_PUSH+IM1", a, "0", "0"})
		}
	case "!ST>":
		for i := len(args) - 1; i >= 0; i-- {
			lines = append(lines, [4]string{"S_POP", "0", "0", args[i]})
		}
	}
	return lines
}
