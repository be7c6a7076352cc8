package services

import (
	"context"

	"github.com/tbourn/go-fault-demo/internal/domain"
	"github.com/tbourn/go-fault-demo/internal/repo"
)

// Fixed file names served by the file routes.
const (
	FileReadable   = "correcto.txt"
	FileMissing    = "inexistente.txt"
	FileRestricted = "restringido.txt"
)

// FileService reads text files from a single base directory.
type FileService struct {
	// Dir is the base directory; relative paths resolve against the
	// process working directory.
	Dir string
}

// Read returns the content of name under Dir.
func (s *FileService) Read(ctx context.Context, name string) (*domain.FileContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := repo.ReadTextFile(s.Dir, name)
	if err != nil {
		return nil, err
	}
	return &domain.FileContent{Mensaje: name, Contenido: text}, nil
}
