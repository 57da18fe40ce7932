// Package trace parses allocation trace files.
//
// A trace is line-oriented. Blank lines and lines starting with '#' are
// ignored. The first meaningful line is the total region capacity (a
// positive integer). Every following meaningful line is a request:
//
//	<name> <size>       allocate, e.g. "P1 100"
//	FREE <name>         free, e.g. "FREE P1"
//
// The free keyword is case-insensitive, accepts the synonyms D, DEALLOC
// and RELEASE, and is also recognized postfix ("P1 FREE"). Anything else
// is kept in the request stream as a malformed entry so the driver can
// report it in order without mutating the simulation.
package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind discriminates the request variants in a parsed trace.
type Kind int

const (
	// Allocate asks for a first-fit allocation of Size bytes for Owner.
	Allocate Kind = iota
	// Free releases the lowest-address block owned by Owner.
	Free
	// Malformed marks a line that parsed as neither request; Err says why.
	Malformed
)

// Request is one trace line in stream order.
type Request struct {
	Kind  Kind
	Owner string
	Size  int
	Line  int    // 1-based line number in the trace
	Raw   string // trimmed original text, for reporting
	Err   error  // parse failure, set only for Malformed requests
}

// Trace is a fully parsed trace file.
type Trace struct {
	Capacity int
	Requests []Request
}

var (
	// ErrBadCapacity indicates the leading capacity line is missing or not
	// a positive integer. This is fatal: the simulation cannot start.
	ErrBadCapacity = errors.New("trace: first meaningful line must be a positive integer capacity")

	// ErrMalformed tags unparsable request lines. Recoverable: the line is
	// reported and skipped.
	ErrMalformed = errors.New("trace: malformed request")
)

// freeWords are the accepted case-insensitive synonyms for the free keyword.
var freeWords = map[string]bool{
	"FREE":    true,
	"D":       true,
	"DEALLOC": true,
	"RELEASE": true,
}

// Parse reads a trace from r. It returns an error only when the capacity
// line is missing or invalid; malformed request lines are preserved in
// Requests with Kind == Malformed.
func Parse(r io.Reader) (*Trace, error) {
	sc := bufio.NewScanner(r)

	tr := &Trace{}
	sawCapacity := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if !sawCapacity {
			fields := strings.Fields(text)
			n, err := strconv.Atoi(fields[0])
			if err != nil || n <= 0 {
				return nil, errors.Wrapf(ErrBadCapacity, "line %d: %q", lineNo, text)
			}
			tr.Capacity = n
			sawCapacity = true
			continue
		}

		tr.Requests = append(tr.Requests, parseRequest(text, lineNo))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "trace: read")
	}
	if !sawCapacity {
		return nil, errors.Wrap(ErrBadCapacity, "empty trace")
	}

	return tr, nil
}

// parseRequest classifies one meaningful request line. Tokens past the
// first two are ignored, matching the original trace dialect.
func parseRequest(text string, lineNo int) Request {
	req := Request{Line: lineNo, Raw: text}
	fields := strings.Fields(text)

	if len(fields) < 2 {
		req.Kind = Malformed
		req.Err = errors.Wrapf(ErrMalformed, "line %d: %q", lineNo, text)
		return req
	}

	if freeWords[strings.ToUpper(fields[0])] {
		req.Kind = Free
		req.Owner = fields[1]
		return req
	}

	if size, err := strconv.Atoi(fields[1]); err == nil {
		if size <= 0 {
			req.Kind = Malformed
			req.Err = errors.Wrapf(ErrMalformed, "line %d: size must be positive: %q", lineNo, text)
			return req
		}
		req.Kind = Allocate
		req.Owner = fields[0]
		req.Size = size
		return req
	}

	// Postfix form: "<name> FREE".
	if freeWords[strings.ToUpper(fields[1])] {
		req.Kind = Free
		req.Owner = fields[0]
		return req
	}

	req.Kind = Malformed
	req.Err = errors.Wrapf(ErrMalformed, "line %d: unrecognized request: %q", lineNo, text)
	return req
}
