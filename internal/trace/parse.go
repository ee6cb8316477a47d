// Package trace parses allocation scripts and replays them against an early
// arena, recording the cursors after every operation.
//
// A script has one operation per line. Blank lines and text after '#' are
// ignored. Numbers are decimal or 0x-prefixed hex.
//
//	init      <start> <size>
//	add       <start> <size>
//	alloc     <size> <align>
//	dealloc   <addr> <size> <align>
//	pages     <num> <align_pow2>
//	freepages <addr> <num>
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("trace: syntax error")

// Kind identifies a script operation.
type Kind uint8

const (
	KindInit Kind = iota + 1
	KindAddMemory
	KindAlloc
	KindDealloc
	KindAllocPages
	KindDeallocPages
)

var kindNames = map[Kind]string{
	KindInit:         "init",
	KindAddMemory:    "add",
	KindAlloc:        "alloc",
	KindDealloc:      "dealloc",
	KindAllocPages:   "pages",
	KindDeallocPages: "freepages",
}

var kindArity = map[Kind]int{
	KindInit:         2,
	KindAddMemory:    2,
	KindAlloc:        2,
	KindDealloc:      3,
	KindAllocPages:   2,
	KindDeallocPages: 2,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func lookupKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Op is one parsed script line.
type Op struct {
	Line int // 1-based
	Kind Kind
	Args []uintptr
}

func (op Op) String() string {
	var b strings.Builder
	b.WriteString(op.Kind.String())
	for _, a := range op.Args {
		fmt.Fprintf(&b, " %#x", a)
	}
	return b.String()
}

// Parse reads a script.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseOp(line, fields)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read script: %w", err)
	}
	return ops, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) ([]Op, error) {
	return Parse(strings.NewReader(s))
}

func parseOp(line int, fields []string) (Op, error) {
	kind, ok := lookupKind(strings.ToLower(fields[0]))
	if !ok {
		return Op{}, fmt.Errorf("%w: line %d: unknown operation %q", ErrSyntax, line, fields[0])
	}
	args := fields[1:]
	if want := kindArity[kind]; len(args) != want {
		return Op{}, fmt.Errorf("%w: line %d: %s takes %d argument(s), got %d", ErrSyntax, line, kind, want, len(args))
	}

	op := Op{Line: line, Kind: kind, Args: make([]uintptr, len(args))}
	for i, s := range args {
		v, err := strconv.ParseUint(s, 0, bits.UintSize)
		if err != nil {
			return Op{}, fmt.Errorf("%w: line %d: argument %d: %w", ErrSyntax, line, i+1, err)
		}
		op.Args[i] = uintptr(v)
	}

	// Page counts and alignment exponents are ints on the allocator side.
	switch kind {
	case KindAllocPages:
		if err := checkInt(line, op.Args[0], op.Args[1]); err != nil {
			return Op{}, err
		}
	case KindDeallocPages:
		if err := checkInt(line, op.Args[1]); err != nil {
			return Op{}, err
		}
	}
	return op, nil
}

func checkInt(line int, vs ...uintptr) error {
	for _, v := range vs {
		if v > math.MaxInt {
			return fmt.Errorf("%w: line %d: %#x does not fit in an int", ErrSyntax, line, v)
		}
	}
	return nil
}
