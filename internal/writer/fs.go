package writer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
)

// FS writes documents into a local directory tree rooted at a store
// directory, creating intermediate directories as needed.
type FS struct {
	root string
}

// NewFS returns a filesystem writer rooted at root.
func NewFS(root string) *FS {
	return &FS{root: root}
}

// WriteDocument serializes doc and writes it to <root>/<relPath>,
// overwriting any previous file.
func (w *FS) WriteDocument(_ context.Context, relPath string, doc any) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	path := filepath.Join(w.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(errs.ErrKindStorageFailed, "create output directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrKindStorageFailed, "write document", err)
	}
	return nil
}
