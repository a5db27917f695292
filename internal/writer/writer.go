// Package writer defines the document writer contract and the local
// filesystem backend. Generators hand their finished document trees to a
// Writer; serialization and storage layout live here, not in the generators.
//
// The minio subpackage provides an object-storage backend for containerized
// deployments.
package writer

import (
	"bytes"
	"context"

	"go.yaml.in/yaml/v3"

	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
)

// Writer persists one generated document under a path relative to the
// configured store root. Writing the same path twice overwrites.
type Writer interface {
	WriteDocument(ctx context.Context, relPath string, doc any) error
}

// yamlIndent matches the indentation ldproxy's own entity files use.
const yamlIndent = 2

// Encode serializes a document tree to YAML.
func Encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(doc); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "encode document", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "encode document", err)
	}
	return buf.Bytes(), nil
}
