// Package asmtest is a small, test-only two-pass assembler for writing
// readable CPU test programs instead of hand-packed instruction words. It
// supports the full instruction set, labels, and a DAT directive for
// inline data; it does not aim to be a general-purpose toolchain.
package asmtest

import (
	"fmt"
	"strconv"
	"strings"
)

var registerCodes = map[string]uint16{
	"A": 0, "B": 1, "C": 2, "X": 3, "Y": 4, "Z": 5, "I": 6, "J": 7,
}

var binaryMnemonics = map[string]uint16{
	"SET": 0x01, "ADD": 0x02, "SUB": 0x03, "MUL": 0x04, "MLI": 0x05,
	"DIV": 0x06, "DVI": 0x07, "MOD": 0x08, "MDI": 0x09, "AND": 0x0A,
	"BOR": 0x0B, "XOR": 0x0C, "SHR": 0x0D, "ASR": 0x0E, "SHL": 0x0F,
	"IFB": 0x10, "IFC": 0x11, "IFE": 0x12, "IFN": 0x13, "IFG": 0x14,
	"IFA": 0x15, "IFL": 0x16, "IFU": 0x17, "ADX": 0x1A, "SBX": 0x1B,
	"STI": 0x1E, "STD": 0x1F,
}

var unaryMnemonics = map[string]uint16{
	"JSR": 0x01, "SLP": 0x02, "INT": 0x08, "IAG": 0x09, "IAS": 0x0A,
	"RFI": 0x0B, "IAQ": 0x0C, "HWN": 0x10, "HWQ": 0x11, "HWI": 0x12,
}

var nullaryMnemonics = map[string]uint16{"NOP": 0x00, "HIB": 0x01}

// statement is one parsed line: either a label definition, a DAT
// directive, or an instruction with zero, one, or two operand tokens.
type statement struct {
	label    string
	mnemonic string
	operands []string
	data     []string // raw DAT operand tokens
	size     int       // words this statement occupies, computed in pass 1
}

// Assemble assembles source into a flat word image starting at address 0.
func Assemble(source string) ([]uint16, error) {
	statements, err := parse(source)
	if err != nil {
		return nil, err
	}

	labels := map[string]uint16{}
	addr := uint16(0)
	for i := range statements {
		s := &statements[i]
		if s.label != "" {
			labels[s.label] = addr
		}
		if s.mnemonic == "" {
			continue
		}
		s.size = sizeOf(s)
		addr += uint16(s.size)
	}

	var out []uint16
	for _, s := range statements {
		if s.mnemonic == "" {
			continue
		}
		words, err := encode(s, labels)
		if err != nil {
			return nil, err
		}
		out = append(out, words...)
	}
	return out, nil
}

func parse(source string) ([]statement, error) {
	var statements []statement
	for _, rawLine := range strings.Split(source, "\n") {
		line := stripComment(rawLine)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var label string
		if strings.HasPrefix(line, ":") {
			parts := strings.SplitN(line[1:], " ", 2)
			label = parts[0]
			line = ""
			if len(parts) == 2 {
				line = strings.TrimSpace(parts[1])
			}
			if line == "" {
				statements = append(statements, statement{label: label})
				continue
			}
		} else if idx := strings.Index(line, ":"); idx >= 0 && !strings.Contains(line[:idx], " ") {
			label = line[:idx]
			line = strings.TrimSpace(line[idx+1:])
			if line == "" {
				statements = append(statements, statement{label: label})
				continue
			}
		}

		fields := strings.SplitN(line, " ", 2)
		mnemonic := strings.ToUpper(fields[0])

		if mnemonic == "DAT" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("asmtest: DAT with no operands: %q", rawLine)
			}
			statements = append(statements, statement{label: label, mnemonic: "DAT", data: splitOperands(fields[1])})
			continue
		}

		var operands []string
		if len(fields) == 2 {
			operands = splitOperands(fields[1])
		}
		statements = append(statements, statement{label: label, mnemonic: mnemonic, operands: operands})
	}
	return statements, nil
}

func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		return line[:idx]
	}
	return line
}

func splitOperands(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func sizeOf(s *statement) int {
	if s.mnemonic == "DAT" {
		return len(s.data)
	}
	if _, ok := nullaryMnemonics[s.mnemonic]; ok {
		return 1
	}
	size := 1
	for _, op := range s.operands {
		size += operandWordCost(op)
	}
	return size
}

// operandWordCost reports whether op needs a trailing NEXT word, without
// needing to know any label's final address: symbolic references always
// take the NEXT-word form, and only in-range numeric literals are ever
// inlined.
func operandWordCost(op string) int {
	op = strings.TrimSpace(op)
	upper := strings.ToUpper(op)
	switch upper {
	case "PUSH", "POP", "PEEK", "SP", "PC", "EX":
		return 0
	}
	if strings.HasPrefix(upper, "PICK") {
		return 1
	}
	if _, ok := registerCodes[upper]; ok {
		return 0
	}
	if strings.HasPrefix(op, "[") {
		inner := strings.TrimSuffix(strings.TrimPrefix(op, "["), "]")
		if strings.Contains(inner, "+") {
			return 1
		}
		if _, ok := registerCodes[strings.ToUpper(inner)]; ok {
			return 0
		}
		return 1
	}
	if n, err := parseNumber(op); err == nil {
		if n >= -1 && n <= 30 {
			return 0
		}
		return 1
	}
	return 1 // bare label reference
}

func parseNumber(tok string) (int64, error) {
	tok = strings.TrimSpace(tok)
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		return strconv.ParseInt(tok[2:], 16, 32)
	}
	return strconv.ParseInt(tok, 10, 32)
}

// encode produces the words for one statement, now that every label's
// address is known.
func encode(s statement, labels map[string]uint16) ([]uint16, error) {
	if s.mnemonic == "DAT" {
		words := make([]uint16, len(s.data))
		for i, tok := range s.data {
			v, err := resolve(tok, labels)
			if err != nil {
				return nil, err
			}
			words[i] = v
		}
		return words, nil
	}

	if op, ok := nullaryMnemonics[s.mnemonic]; ok {
		return []uint16{op}, nil
	}

	if op, ok := unaryMnemonics[s.mnemonic]; ok {
		if len(s.operands) != 1 {
			return nil, fmt.Errorf("asmtest: %s wants 1 operand, got %d", s.mnemonic, len(s.operands))
		}
		aField, extra, err := encodeOperand(s.operands[0], labels)
		if err != nil {
			return nil, err
		}
		word := (aField << 10) | (op << 5)
		return append([]uint16{word}, extra...), nil
	}

	op, ok := binaryMnemonics[s.mnemonic]
	if !ok {
		return nil, fmt.Errorf("asmtest: unknown mnemonic %q", s.mnemonic)
	}
	if len(s.operands) != 2 {
		return nil, fmt.Errorf("asmtest: %s wants 2 operands, got %d", s.mnemonic, len(s.operands))
	}
	bField, bExtra, err := encodeOperand(s.operands[0], labels)
	if err != nil {
		return nil, err
	}
	aField, aExtra, err := encodeOperand(s.operands[1], labels)
	if err != nil {
		return nil, err
	}
	word := (aField << 10) | (bField << 5) | op
	words := []uint16{word}
	words = append(words, bExtra...)
	words = append(words, aExtra...)
	return words, nil
}

// encodeOperand returns the 6-bit operand field and any trailing NEXT
// words. PUSH and POP always produce the destination-side encoding 0x18;
// callers writing POP as a source rely on the Decoder's own isDst
// disambiguation at runtime, not on anything this assembler does.
func encodeOperand(tok string, labels map[string]uint16) (uint16, []uint16, error) {
	tok = strings.TrimSpace(tok)
	upper := strings.ToUpper(tok)

	switch upper {
	case "PUSH", "POP":
		return 0x18, nil, nil
	case "PEEK":
		return 0x19, nil, nil
	case "SP":
		return 0x1B, nil, nil
	case "PC":
		return 0x1C, nil, nil
	case "EX":
		return 0x1D, nil, nil
	}
	if strings.HasPrefix(upper, "PICK") {
		rest := strings.TrimSpace(upper[len("PICK"):])
		v, err := resolve(rest, labels)
		if err != nil {
			return 0, nil, err
		}
		return 0x1A, []uint16{v}, nil
	}
	if reg, ok := registerCodes[upper]; ok {
		return reg, nil, nil
	}
	if strings.HasPrefix(tok, "[") {
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "["), "]")
		if idx := strings.Index(inner, "+"); idx >= 0 {
			left := strings.ToUpper(strings.TrimSpace(inner[:idx]))
			right := strings.ToUpper(strings.TrimSpace(inner[idx+1:]))
			regName, other := left, right
			if _, ok := registerCodes[regName]; !ok {
				regName, other = right, left
			}
			reg, ok := registerCodes[regName]
			if !ok {
				return 0, nil, fmt.Errorf("asmtest: %q has no register operand", tok)
			}
			v, err := resolve(other, labels)
			if err != nil {
				return 0, nil, err
			}
			return 0x10 + reg, []uint16{v}, nil
		}
		if reg, ok := registerCodes[strings.ToUpper(inner)]; ok {
			return 0x08 + reg, nil, nil
		}
		v, err := resolve(inner, labels)
		if err != nil {
			return 0, nil, err
		}
		return 0x1E, []uint16{v}, nil
	}

	if n, err := parseNumber(tok); err == nil && n >= -1 && n <= 30 {
		return uint16(0x21 + n), nil, nil
	}
	v, err := resolve(tok, labels)
	if err != nil {
		return 0, nil, err
	}
	return 0x1F, []uint16{v}, nil
}

func resolve(tok string, labels map[string]uint16) (uint16, error) {
	tok = strings.TrimSpace(tok)
	if n, err := parseNumber(tok); err == nil {
		return uint16(n), nil
	}
	if addr, ok := labels[tok]; ok {
		return addr, nil
	}
	return 0, fmt.Errorf("asmtest: unresolved operand %q", tok)
}
