package questgraph

import "fmt"

// Converter turns a loaded document into the value written for it.
type Converter func(root any) (any, error)

// GraphConverter converts a quest document into a graph with statistics.
func GraphConverter(root any) (any, error) {
	g, err := Convert(root)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// IdentityConverter passes the document through unchanged.
func IdentityConverter(root any) (any, error) {
	return root, nil
}

// ConverterByName resolves "graph" or "identity".
func ConverterByName(name string) (Converter, error) {
	switch name {
	case "graph":
		return GraphConverter, nil
	case "identity":
		return IdentityConverter, nil
	}
	return nil, fmt.Errorf("questgraph: unknown converter %q", name)
}
