// Package yamldoc loads YAML files into the ordered document trees that
// questgraph converters consume.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meikuraledutech/questgraph"
)

// Loader reads YAML documents from the filesystem.
type Loader struct{}

// NewLoader returns a YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the file at path. A missing file yields
// *questgraph.MissingInputError; unparsable content yields
// *questgraph.MalformedDocumentError.
func (l *Loader) Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &questgraph.MissingInputError{Path: path}
		}
		return nil, &questgraph.MalformedDocumentError{Path: path, Err: err}
	}
	v, err := Decode(bytes.NewReader(data))
	if err != nil {
		var mdErr *questgraph.MalformedDocumentError
		if errors.As(err, &mdErr) {
			mdErr.Path = path
		}
		return nil, err
	}
	return v, nil
}

// Decode reads the first YAML document from r. An empty stream decodes to nil.
func Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &questgraph.MalformedDocumentError{Err: err}
	}
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &questgraph.MalformedDocumentError{Err: err}
	}
	c := &converter{budget: nodeBudget(len(data))}
	v, err := c.node(&root, 0)
	if err != nil {
		return nil, &questgraph.MalformedDocumentError{Err: err}
	}
	return v, nil
}

const (
	// maxDepth bounds nesting, including nesting reached through aliases.
	maxDepth = 512
	// Alias expansion may produce at most minNodeBudget plus
	// nodesPerSourceByte times the source size in converted nodes.
	minNodeBudget      = 10000
	nodesPerSourceByte = 16
)

func nodeBudget(size int) int {
	return minNodeBudget + nodesPerSourceByte*size
}

// converter turns a yaml.Node tree into a document tree. Every converted
// node, including each copy an alias expands to, is charged to budget.
type converter struct {
	budget int
}

func (c *converter) node(n *yaml.Node, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("line %d: document nested deeper than %d levels", n.Line, maxDepth)
	}
	c.budget--
	if c.budget < 0 {
		return nil, fmt.Errorf("line %d: document expands to too many nodes through aliases", n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.node(n.Content[0], depth+1)
	case yaml.AliasNode:
		return c.node(n.Alias, depth+1)
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.node(item, depth+1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.MappingNode:
		return c.mapping(n, depth)
	case yaml.ScalarNode:
		return convertScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func (c *converter) mapping(n *yaml.Node, depth int) (*questgraph.Mapping, error) {
	m := questgraph.NewMapping()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.Value == "<<" && k.ShortTag() == "!!merge" {
			if err := c.merge(m, v, depth); err != nil {
				return nil, err
			}
			continue
		}

		key := k
		if key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		val, err := c.node(v, depth+1)
		if err != nil {
			return nil, err
		}
		m.Set(key.Value, val)
	}
	return m, nil
}

// merge applies a "<<" merge key. Keys already present win.
func (c *converter) merge(m *questgraph.Mapping, v *yaml.Node, depth int) error {
	var sources []*yaml.Node
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	} else {
		sources = []*yaml.Node{v}
	}
	for _, src := range sources {
		val, err := c.node(src, depth+1)
		if err != nil {
			return err
		}
		sm, ok := val.(*questgraph.Mapping)
		if !ok {
			return fmt.Errorf("line %d: merge key needs a mapping", v.Line)
		}
		for _, k := range sm.Keys() {
			if _, exists := m.Get(k); exists {
				continue
			}
			sv, _ := sm.Get(k)
			m.Set(k, sv)
		}
	}
	return nil
}

func convertScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep the precision a float can offer.
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return nil, err
			}
			return f, nil
		}
		if i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			// JSON has no representation for these.
			return n.Value, nil
		}
		return f, nil
	}
	return n.Value, nil
}
