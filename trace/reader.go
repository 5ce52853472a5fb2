// Package trace reads memory-reference trace files. Each line holds a
// hexadecimal address and a one-character reference kind:
//
//	3f7fa81c R
//
// with I for an instruction fetch, R for a data read, and W for a data
// write. The format is kept byte-compatible with existing trace files.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/cache"
)

// Parse failure causes carried inside a ParseError.
var (
	ErrMalformedLine = errors.New("trace line is not an address and a kind character")
	ErrBadAddress    = errors.New("trace address is not a hexadecimal number")
	ErrUnknownKind   = errors.New("unknown reference kind character")
)

// ParseError reports an unusable trace line. It is recoverable: the reader
// stays positioned after the bad line and Next keeps going.
type ParseError struct {
	// Line is the 1-based line number in the trace.
	Line int
	// Text is the offending line.
	Text string
	// Err names the way the line is bad.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader turns a stream of trace lines into memory references. It reads the
// underlying stream exactly once, in order.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader returns a Reader consuming trace lines from r. The caller keeps
// ownership of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next memory reference. It returns io.EOF once the trace
// is exhausted and a *ParseError for a malformed line; after a ParseError
// the following call continues with the next line. Blank lines are skipped.
func (r *Reader) Next() (cache.Reference, error) {
	for r.scanner.Scan() {
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 || len(fields[1]) != 1 {
			return cache.Reference{}, &ParseError{Line: r.line, Text: text, Err: ErrMalformedLine}
		}

		addrText := strings.TrimPrefix(strings.ToLower(fields[0]), "0x")
		addr, err := strconv.ParseUint(addrText, 16, 64)
		if err != nil {
			return cache.Reference{}, &ParseError{Line: r.line, Text: text, Err: ErrBadAddress}
		}

		kind, ok := kindFromTag(fields[1][0])
		if !ok {
			return cache.Reference{}, &ParseError{Line: r.line, Text: text, Err: ErrUnknownKind}
		}

		return cache.Reference{Address: addr, Kind: kind}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return cache.Reference{}, fmt.Errorf("failed to read trace: %w", err)
	}
	return cache.Reference{}, io.EOF
}

func kindFromTag(tag byte) (cache.Kind, bool) {
	switch tag {
	case 'I':
		return cache.Instruction, true
	case 'R':
		return cache.DataRead, true
	case 'W':
		return cache.DataWrite, true
	default:
		return 0, false
	}
}

// File is a Reader over an opened trace file.
type File struct {
	Reader
	f *os.File
}

// Open opens a trace file for reading. The caller must Close the returned
// File when done.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	return &File{Reader: *NewReader(f), f: f}, nil
}

// Close releases the underlying file.
func (t *File) Close() error {
	return t.f.Close()
}
