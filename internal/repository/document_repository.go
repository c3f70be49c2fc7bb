package repository

import (
	"context"

	"clip-summarize/internal/domain/entity"
)

// DocumentRepository reads and rewrites notes in the vault.
type DocumentRepository interface {
	Read(ctx context.Context, path string) (*entity.Document, error)
	Write(ctx context.Context, doc *entity.Document) error
	Rel(path string) (string, error)
}
