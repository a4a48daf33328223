// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":     "0",
	"RESET_PC":   fmt.Sprintf("%#x", RESET_PC),
	"STACK_BASE": fmt.Sprintf("%#x", STACK_BASE),
}

// Assembler is a single pass macro assembler for the m6502 system.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	pc         int // Address of the next generated byte.
	expansions int // Count of macro expansions, for unique local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	var v64 int64
	if strings.HasPrefix(word, "$") {
		v64, err = strconv.ParseInt(word[1:], 16, 33)
	} else {
		v64, err = strconv.ParseInt(word, 0, 33)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 <= 0xffffffff && v64 >= -int64(0x80000000) {
		if v64 < 0 {
			value = uint32(0xffffffff + (v64 + 1))
		} else {
			value = uint32(v64)
		}
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	err = nil
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if len(label) == 0 {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.pc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		expansion := asm.expansions

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, expansion))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.pc = 0
	asm.expansions = 0
	asm.Statement = asm.Statement[:0]
	asm.Label = make(map[string]int, 16)
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if err = scanner.Err(); err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of absolute labels.
	st, err := asm.link()
	if err != nil {
		lineno = st.LineNo
		line = strings.Join(st.Words, " ")
		return
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}

// link resolves label references into absolute operands. On failure,
// the offending statement is returned with the error.
func (asm *Assembler) link() (st *Statement, err error) {
	for n := range asm.Statement {
		st = &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		label := st.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		if len(st.Bytes) != 3 {
			err = ErrLinkInvalid
			return
		}
		st.Bytes[1] = byte(addr & 0xff)
		st.Bytes[2] = byte((addr >> 8) & 0xff)
	}

	st = nil
	return
}

var labelRe = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// isLabel returns true if word can only be a label reference.
func isLabel(word string) bool {
	return labelRe.MatchString(word)
}

// operand decodes a single instruction operand into an addressing mode
// and a value, or a label to link.
func (asm *Assembler) operand(word string) (mode AddressMode, value uint32, label string, err error) {
	mode = MODE_ABSOLUTE

	switch {
	case strings.HasPrefix(word, "#"):
		mode = MODE_IMMEDIATE
		word = word[1:]
	case strings.HasSuffix(strings.ToLower(word), ",x"):
		mode = MODE_ZERO_PAGE_X
		word = word[:len(word)-2]
	}

	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	if isLabel(word) {
		if mode != MODE_ABSOLUTE {
			err = ErrOperandMode
			return
		}
		label = word
		return
	}

	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	switch mode {
	case MODE_IMMEDIATE, MODE_ZERO_PAGE_X:
		if value > 0xff {
			err = ErrOperandRange
			return
		}
	default:
		if value > 0xffff {
			err = ErrOperandRange
			return
		}
		if value <= 0xff {
			mode = MODE_ZERO_PAGE
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		if asm.pc+len(data) > 0x10000 {
			err = ErrAddressOverflow
			return
		}
		st := Statement{LineNo: lineno, Address: uint16(asm.pc), Words: initial_words, Bytes: data, LinkLabel: label}
		asm.Statement = append(asm.Statement, st)
		asm.pc += len(data)
	}()

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	switch mnemonic {
	case ".org":
		if len(args) != 1 {
			err = ErrOrgSyntax
			return
		}
		var value uint32
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if value > 0xffff {
			err = ErrOperandRange
			return
		}
		asm.pc = int(value)
	case ".byte":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint32
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			if value > 0xff {
				err = ErrOperandRange
				return
			}
			data = append(data, byte(value))
		}
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint32
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			if value > 0xffff {
				err = ErrOperandRange
				return
			}
			data = append(data, byte(value&0xff), byte(value>>8))
		}
	case "lda", "jsr":
		if len(args) < 1 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var mode AddressMode
		var value uint32
		mode, value, label, err = asm.operand(args[0])
		if err != nil {
			return
		}
		if mnemonic == "jsr" && mode == MODE_ZERO_PAGE {
			mode = MODE_ABSOLUTE
		}
		op, ok := Encode(mnemonic, mode)
		if !ok {
			err = ErrOperandMode
			return
		}
		data = append(data, byte(op))
		switch mode.OperandSize() {
		case 1:
			data = append(data, byte(value))
		case 2:
			data = append(data, byte(value&0xff), byte(value>>8))
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}
