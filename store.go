package stockfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Load decodes the catalog stored in filename.
//
// A file that does not exist is an empty catalog, not an error. So is a file
// that cannot be read, after a warning on the logger set by WithLogger.
func Load(filename string, opts ...Option) (Catalog, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Catalog{}, nil
	}
	if err != nil {
		return unreadable(filename, err, opts), nil
	}
	defer f.Close()

	c, err := Decode(f, opts...)
	if err != nil {
		return unreadable(filename, err, opts), nil
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

func unreadable(filename string, err error, opts []Option) Catalog {
	newOptions(opts).logger.Warn("cannot read catalog, starting empty",
		zap.String("file", filename),
		zap.Error(err),
	)
	return Catalog{}
}

// Save rewrites filename with the whole catalog.
//
// The catalog is written to a temporary file in the same folder, then renamed
// over filename, so a failed write leaves the previous content in place.
func Save(filename string, c Catalog) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("persist error: cannot create file in %q: %w", dir, err)
	}
	// No-op once renamed.
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, c); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist error: cannot write %q: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("persist error: cannot set mode of %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("persist error: cannot replace %q: %w", filename, err)
	}
	return nil
}
