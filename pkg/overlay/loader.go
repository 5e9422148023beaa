package overlay

import (
	"context"
	"os"
	"path/filepath"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
)

// Loader resolves overlay image references from pattern descriptors.
type Loader interface {
	// Load resolves ref and returns the decoded image. The reference
	// is the raw string from the descriptor's "image" field.
	Load(ctx context.Context, ref string) (*Image, error)
}

// FileLoader resolves overlay references against a base directory,
// typically the directory containing the descriptor file. References
// must be relative and stay inside the base directory.
type FileLoader struct {
	base string
}

// NewFileLoader returns a Loader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{base: dir}
}

// Load opens and decodes the referenced image file.
func (l *FileLoader) Load(ctx context.Context, ref string) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.ValidateOverlayPath(ref); err != nil {
		return nil, err
	}

	full := filepath.Join(l.base, filepath.FromSlash(ref))
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
				"overlay image %q not found", ref)
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, err,
			"open overlay image %q", ref)
	}
	defer f.Close()

	return Read(f)
}

// Disabled is a Loader that rejects every overlay reference. It is
// used where no filesystem is available, such as the HTTP API when no
// overlay directory has been configured.
type Disabled struct{}

// Load always fails with a resource error naming the reference.
func (Disabled) Load(_ context.Context, ref string) (*Image, error) {
	return nil, errors.New(errors.ErrCodeFileNotFound,
		"overlay image %q cannot be loaded: overlay loading is disabled", ref)
}
