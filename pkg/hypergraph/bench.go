package hypergraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadBench parses a circuit in BENCH format into a hypergraph. Three line
// forms are recognized:
//
//	INPUT(name)
//	OUTPUT(name)
//	out = gate(in1, in2, ...)
//
// Each gate line becomes one hyperedge over the output and all inputs, with
// the gate type recorded on the output node. Nodes are created on first
// mention. Comment lines (#), indented lines and blank lines are skipped.
func ReadBench(r io.Reader) (*Hypergraph, error) {
	h := New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" || line[0] == '#' || line[0] == ' ' {
			continue
		}
		line = strings.TrimRight(line, "\r")
		if err := h.readBenchLine(line); err != nil {
			return nil, fmt.Errorf("bench line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("bench read: %w", err)
	}
	return h, nil
}

// ReadBenchFile reads a BENCH circuit file.
func ReadBenchFile(path string) (*Hypergraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBench(f)
}

func (h *Hypergraph) readBenchLine(line string) error {
	if name, ok := benchDecl(line, "INPUT"); ok {
		return h.benchNode(name, Input)
	}
	if name, ok := benchDecl(line, "OUTPUT"); ok {
		return h.benchNode(name, Output)
	}

	out, rest, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("malformed gate line %q", line)
	}
	out = strings.TrimSpace(out)
	gate, args, ok := strings.Cut(strings.TrimSpace(rest), "(")
	if !ok {
		return fmt.Errorf("gate without argument list in %q", line)
	}
	args = strings.TrimSuffix(strings.TrimSpace(args), ")")

	if err := h.benchNode(out, parseGate(strings.TrimSpace(gate))); err != nil {
		return err
	}
	members := []string{out}
	for _, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if !h.HasNode(arg) {
			if _, err := h.AddNode(arg); err != nil {
				return err
			}
		}
		members = append(members, arg)
	}
	_, err := h.AddEdge(members...)
	return err
}

// benchNode creates name with the given type, or upgrades the type of an
// existing node. OUTPUT declarations never downgrade a gate type parsed
// earlier.
func (h *Hypergraph) benchNode(name string, t GateType) error {
	if name == "" {
		return ErrInvalidNodeID
	}
	if n := h.Node(name); n != nil {
		if t != Output || n.Type == Normal {
			n.Type = t
		}
		return nil
	}
	_, err := h.AddTypedNode(name, t)
	return err
}

func benchDecl(line, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(line, keyword+"(")
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, ")")
	return strings.TrimSpace(name), ok
}

func parseGate(name string) GateType {
	switch strings.ToLower(name) {
	case "and":
		return And
	case "or":
		return Or
	case "nor":
		return Nor
	case "not":
		return Not
	case "xor":
		return Xor
	case "buf":
		return Buf
	case "nand":
		return Nand
	case "dff":
		return Dff
	}
	return Normal
}
