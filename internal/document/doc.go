// Package document turns contract text into a generic ordered tree and back.
//
// The tree is a gopkg.in/yaml.v3 node graph: it keeps key order, scalar
// styles and source positions, and reads both YAML and JSON input. Emit is
// deterministic and never reorders keys, so Parse(Emit(t)) reproduces t for
// trees already in canonical form.
package document
