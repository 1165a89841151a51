package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim"
)

// Sentinel tokens. STOPHERE or N at the start of a record header ends the
// file; either token inside a history line ends that record's history.
const (
	stopToken    = "STOPHERE"
	historyToken = "N"
)

// ParseError reports a malformed workload record. Line is 1-based.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads a workload file. Files ending in .yaml or .yml are parsed with
// LoadSpec; anything else uses the two-line text format.
func Load(path string) ([]sim.ProcessSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err := LoadSpec(path)
		if err != nil {
			return nil, err
		}
		return spec.ProcessSpecs()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing workload %s: %w", path, err)
	}
	return specs, nil
}

// Parse reads the text workload format: repeating pairs of lines
//
//	<name> <arrival_time>
//	<kind> <duration> <kind> <duration> ... N 0
//
// with kind one of C, I, O. A header line starting with STOPHERE or N ends
// the file, as does a history line starting with STOPHERE. Blank lines
// between records are ignored.
func Parse(r io.Reader) ([]sim.ProcessSpec, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}

	specs := make([]sim.ProcessSpec, 0)
	for idx := 0; idx < len(lines); {
		header := strings.Fields(lines[idx])
		if len(header) == 0 {
			idx++
			continue
		}
		if header[0] == stopToken || header[0] == historyToken {
			logrus.Debugf("workload: stop marker on line %d", idx+1)
			break
		}
		headerLine := idx + 1

		spec, err := parseHeader(header, headerLine)
		if err != nil {
			return nil, err
		}
		if idx+1 >= len(lines) {
			return nil, &ParseError{Line: headerLine, Msg: fmt.Sprintf("process %q has no history line", spec.Name)}
		}
		tokens := strings.Fields(lines[idx+1])
		if len(tokens) > 0 && tokens[0] == stopToken {
			// a header with no history before the stop marker is not a process
			logrus.Debugf("workload: stop marker on line %d, dropping %q", idx+2, spec.Name)
			break
		}
		spec.History, err = parseHistory(tokens, idx+2)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, &ParseError{Line: headerLine, Msg: "invalid record", Err: err}
		}
		specs = append(specs, spec)
		idx += 2
	}
	return specs, nil
}

func parseHeader(tokens []string, line int) (sim.ProcessSpec, error) {
	if len(tokens) < 2 {
		return sim.ProcessSpec{}, &ParseError{Line: line, Msg: fmt.Sprintf("process %q is missing its arrival time", tokens[0])}
	}
	arrival, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return sim.ProcessSpec{}, &ParseError{Line: line, Msg: fmt.Sprintf("process %q: bad arrival time %q", tokens[0], tokens[1]), Err: err}
	}
	if arrival < 0 {
		return sim.ProcessSpec{}, &ParseError{Line: line, Msg: fmt.Sprintf("process %q: negative arrival time %d", tokens[0], arrival)}
	}
	return sim.ProcessSpec{Name: tokens[0], ArrivalTime: arrival}, nil
}

// parseHistory reads alternating kind/duration tokens up to a sentinel.
func parseHistory(tokens []string, line int) ([]sim.Instruction, error) {
	history := make([]sim.Instruction, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		if tokens[i] == historyToken || tokens[i] == stopToken {
			break
		}
		kind, err := sim.ParseKind(tokens[i])
		if err != nil {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("token %d", i+1), Err: err}
		}
		if i+1 >= len(tokens) {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("kind %s at token %d has no duration", tokens[i], i+1)}
		}
		duration, err := strconv.ParseInt(tokens[i+1], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("bad duration %q at token %d", tokens[i+1], i+2), Err: err}
		}
		history = append(history, sim.Instruction{Kind: kind, Duration: duration})
	}
	return history, nil
}

// Write renders specs in the text format, ending with a STOPHERE line.
func Write(w io.Writer, specs []sim.ProcessSpec) error {
	bw := bufio.NewWriter(w)
	for _, spec := range specs {
		fmt.Fprintf(bw, "%s %d\n", spec.Name, spec.ArrivalTime)
		for _, in := range spec.History {
			fmt.Fprintf(bw, "%c %d ", byte(in.Kind), in.Duration)
		}
		fmt.Fprintf(bw, "%s 0\n", historyToken)
	}
	fmt.Fprintf(bw, "%s  0\n", stopToken)
	return bw.Flush()
}
