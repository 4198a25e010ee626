package xmlutils

import (
	"bytes"
	"fmt"

	"gopkg.in/xmlpath.v2"
)

// Query evaluates an XPath expression against XML data and returns every
// matching value in document order. Used for ad hoc read-only extraction;
// the field codec uses the compiled field map instead.
func Query(data []byte, expr string) ([]string, error) {
	path, err := xmlpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}
	return values, nil
}

// QueryFirst returns the first match of an XPath expression, or "" when
// nothing matches.
func QueryFirst(data []byte, expr string) (string, error) {
	values, err := Query(data, expr)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}
