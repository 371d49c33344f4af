package document

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"contract-mapper/internal/errors"
)

var linePattern = regexp.MustCompile(`^yaml: line (\d+):\s*(.*)$`)

// Parse reads the first document of data and returns its top-level mapping.
func Parse(data []byte) (*yaml.Node, error) {
	docs, err := ParseStream(data)
	if err != nil {
		return nil, err
	}

	return docs[0], nil
}

// ParseStream reads every document of data. Each returned node is the
// top-level mapping of one document. At least one document is returned on
// success.
func ParseStream(data []byte) ([]*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &errors.MalformedDocumentError{Reason: "empty document"}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*yaml.Node

	for {
		var doc yaml.Node

		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, malformed(err)
		}

		root := Resolve(&doc)
		if root == nil || root.Kind != yaml.MappingNode {
			line, col := 0, 0
			if root != nil {
				line, col = root.Line, root.Column
			}

			return nil, errors.WithHint(
				&errors.MalformedDocumentError{Line: line, Column: col, Reason: "top-level value must be a mapping"},
				"a data contract starts with keys such as apiVersion, kind and schema")
		}

		docs = append(docs, root)
	}

	if len(docs) == 0 {
		return nil, &errors.MalformedDocumentError{Reason: "empty document"}
	}

	return docs, nil
}

// malformed converts a yaml.v3 error into a MalformedDocumentError, keeping
// the line number from the parser diagnostic when there is one.
func malformed(err error) error {
	msg := err.Error()
	out := &errors.MalformedDocumentError{Reason: strings.TrimPrefix(msg, "yaml: "), Err: err}

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		out.Line, _ = strconv.Atoi(m[1])
		out.Reason = m[2]
	}

	return out
}
