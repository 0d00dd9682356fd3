// Package repositories определяет интерфейсы доступа к хранилищу записей дневника.
package repositories

import (
	"context"

	"lifebook/internal/diary/domain/entities"
)

// EntryRepository определяет контракт хранилища записей дневника.
type EntryRepository interface {
	// Create сохраняет новую запись и возвращает ее с заполненным ID.
	Create(ctx context.Context, entry *entities.Entry) (*entities.Entry, error)

	// ListByUser возвращает все записи пользователя в порядке выборки из хранилища.
	ListByUser(ctx context.Context, userID string) ([]*entities.Entry, error)

	// DeleteByID удаляет запись пользователя по идентификатору.
	DeleteByID(ctx context.Context, userID, entryID string) error
}
