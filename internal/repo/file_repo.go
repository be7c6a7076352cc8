// Package repo implements the data access layer. This file reads the local
// text files served by the file routes.
package repo

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

// ReadTextFile reads name from baseDir as UTF-8 text. Only the base name of
// name is used, so the read never leaves baseDir.
//
// Errors:
//   - domain.KindFileNotFound when the file does not exist.
//   - domain.KindFileRead for anything else (permissions, directories,
//     invalid UTF-8).
func ReadTextFile(baseDir, name string) (string, error) {
	path := filepath.Join(baseDir, filepath.Base(name))
	op := "read " + path

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.E(domain.KindFileNotFound, domain.ReasonNone, op, err)
		}
		return "", domain.E(domain.KindFileRead, domain.ReasonNone, op, err)
	}
	defer f.Close()

	b, err := io.ReadAll(transform.NewReader(f, encoding.UTF8Validator))
	if err != nil {
		return "", domain.E(domain.KindFileRead, domain.ReasonNone, op, err)
	}
	return string(b), nil
}
