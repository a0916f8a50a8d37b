// Package modelfile reads and writes Boolean networks as YAML (or JSON)
// prime-implicant tables:
//
//	nodes:
//	  A:
//	    positive: [{A: 1}]
//	    negative: [{A: 0}]
//	  B:
//	    positive: [{A: 1, C: 0}]
//	    negative: [{A: 0}, {C: 1}]
//
// Literal values are 0/1; true/false are accepted on input. JSON documents
// parse unchanged since JSON is a subset of YAML.
package modelfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolprob/network"
)

// ErrInvalidModel wraps every decoding or compilation failure.
var ErrInvalidModel = errors.New("modelfile: invalid model")

type document struct {
	Nodes map[string]rule `yaml:"nodes"`
}

type rule struct {
	Positive []map[string]bit `yaml:"positive"`
	Negative []map[string]bit `yaml:"negative"`
}

// bit is a literal value written as 0 or 1.
type bit bool

// UnmarshalYAML accepts 0, 1, true and false.
func (b *bit) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: literal value must be a scalar", n.Line)
	}
	switch n.Value {
	case "0", "false", "False", "FALSE":
		*b = false
	case "1", "true", "True", "TRUE":
		*b = true
	default:
		return fmt.Errorf("line %d: literal value %q is not 0 or 1", n.Line, n.Value)
	}
	return nil
}

// MarshalYAML writes the bit as an integer.
func (b bit) MarshalYAML() (any, error) {
	if b {
		return 1, nil
	}
	return 0, nil
}

// Parse decodes a model document and compiles it. Unknown keys are rejected.
func Parse(data []byte) (*network.Network, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidModel, network.ErrEmptyNetwork)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	primes := make(map[string]network.Primes, len(doc.Nodes))
	for name, r := range doc.Nodes {
		primes[name] = network.Primes{
			Positive: toAssignments(r.Positive),
			Negative: toAssignments(r.Negative),
		}
	}
	net, err := network.New(primes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	return net, nil
}

// Load reads and parses the model file at path.
func Load(path string) (*network.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	net, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}

// Encode writes net in the model format. Nodes and literals come out sorted
// by name.
func Encode(w io.Writer, net *network.Network) error {
	doc := document{Nodes: make(map[string]rule, net.Len())}
	for _, name := range net.Nodes() {
		p, _ := net.Primes(name)
		doc.Nodes[name] = rule{
			Positive: fromAssignments(p.Positive),
			Negative: fromAssignments(p.Negative),
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func toAssignments(in []map[string]bit) []network.Assignment {
	out := make([]network.Assignment, 0, len(in))
	for _, m := range in {
		a := make(network.Assignment, len(m))
		for k, v := range m {
			a[k] = bool(v)
		}
		out = append(out, a)
	}
	return out
}

func fromAssignments(in []network.Assignment) []map[string]bit {
	out := make([]map[string]bit, 0, len(in))
	for _, a := range in {
		m := make(map[string]bit, len(a))
		for k, v := range a {
			m[k] = bit(v)
		}
		out = append(out, m)
	}
	return out
}
