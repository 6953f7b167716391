package rasm

import "strings"

// v2Trigger is the comment substring that switches the remainder of a file
// into v2 preprocessing mode. It must appear on a line whose code portion
// is empty — a pure comment line, possibly blank.
const v2Trigger = "&rail-asm-v2"

type lineKind int

const (
	lineEmpty lineKind = iota
	lineLabel
	lineConst
	lineCode
)

// sourceLine is a classified logical line of assembly source, carrying
// enough of the original text that a resolution failure can cite it.
type sourceLine struct {
	number   int
	original string
	kind     lineKind
	tagName  string
	tagValue string
	tokens   [4]string
}

// parseLines runs pass 1: it classifies every physical line, expanding v2
// macros and syntactic sugar as it goes, without yet touching the symbol
// tables. It returns one sourceLine per physical line, except that a v2
// stack macro expands into several.
func parseLines(source string) ([]sourceLine, error) {
	raw := strings.Split(source, "\n")
	lines := make([]sourceLine, 0, len(raw))
	v2 := false

	for i, text := range raw {
		number := i + 1
		code, comment := extractComment(text)

		if code == "" {
			if strings.Contains(comment, v2Trigger) {
				v2 = true
			}
			lines = append(lines, sourceLine{number: number, original: text, kind: lineEmpty})
			continue
		}

		switch {
		case strings.HasPrefix(code, "LABEL"):
			parts := strings.Fields(code)
			if len(parts) < 2 {
				return nil, &AssemblyError{Line: number, Text: text, Msg: "LABEL directive is missing its name"}
			}
			lines = append(lines, sourceLine{number: number, original: text, kind: lineLabel, tagName: parts[1]})

		case strings.HasPrefix(code, "CONST"):
			parts := strings.Fields(code)
			if len(parts) < 3 {
				return nil, &AssemblyError{Line: number, Text: text, Msg: "CONST directive is missing its name or value"}
			}
			lines = append(lines, sourceLine{number: number, original: text, kind: lineConst, tagName: parts[1], tagValue: parts[2]})

		default:
			expanded, err := splitCodeLine(code, v2)
			if err != nil {
				return nil, &AssemblyError{Line: number, Text: text, Msg: err.Error()}
			}
			for _, tokens := range expanded {
				lines = append(lines, sourceLine{number: number, original: text, kind: lineCode, tokens: tokens})
			}
		}
	}

	return lines, nil
}

// extractComment splits a raw line on the first '#' and folds the code
// portion to upper case; identifiers and mnemonics are case-insensitive,
// comments are left verbatim so the v2 trigger can be matched as written.
func extractComment(raw string) (code, comment string) {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		code = strings.TrimSpace(raw[:idx])
		comment = strings.TrimSpace(raw[idx+1:])
	} else {
		code = strings.TrimSpace(raw)
	}
	return strings.ToUpper(code), comment
}
