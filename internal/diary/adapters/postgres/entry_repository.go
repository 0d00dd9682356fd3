// Package postgres предоставляет реализацию хранилища записей дневника на PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"lifebook/internal/diary/domain/entities"
	"lifebook/internal/diary/ports/repositories"
	"lifebook/pkg/logger"
)

// PgxPoolInterface описывает операции пула, используемые репозиторием записей.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Close()
}

// EntryRepository реализует интерфейс repositories.EntryRepository для работы с Postgres.
type EntryRepository struct {
	pool PgxPoolInterface
}

// NewEntryRepository создает новый экземпляр репозитория записей дневника.
func NewEntryRepository(pool PgxPoolInterface) repositories.EntryRepository {
	return &EntryRepository{pool: pool}
}

// entryRow группирует nullable-колонки записи для сканирования.
type entryRow struct {
	createdAt  sql.NullTime
	legacyDate sql.NullString
	legacyTime sql.NullString
}

func (r *entryRow) apply(entry *entities.Entry) {
	if r.createdAt.Valid {
		createdAt := r.createdAt.Time.UTC()
		entry.CreatedAt = &createdAt
	}
	entry.LegacyDate = r.legacyDate.String
	entry.LegacyTime = r.legacyTime.String
}

// Create сохраняет новую запись дневника.
func (r *EntryRepository) Create(ctx context.Context, entry *entities.Entry) (*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "Create"))

	query := `
        INSERT INTO entries (user_id, content, mood, created_at, has_ai_response)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	var createdAt *time.Time
	if entry.CreatedAt != nil {
		utc := entry.CreatedAt.UTC()
		createdAt = &utc
	}

	created := *entry
	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Content,
		string(entry.Mood),
		createdAt,
		entry.HasAIResponse,
	).Scan(&created.ID)

	if err != nil {
		log.Error(ctx, "error creating diary entry", zap.Error(err))
		return nil, fmt.Errorf("error creating diary entry: %w", err)
	}

	return &created, nil
}

// ListByUser возвращает все записи пользователя.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "ListByUser"))

	query := `
        SELECT id, user_id, content, mood, created_at, has_ai_response, legacy_date, legacy_time
        FROM entries
        WHERE user_id = $1
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "error querying diary entries", zap.Error(err))
		return nil, fmt.Errorf("error querying diary entries: %w", err)
	}
	defer rows.Close()

	entriesList := make([]*entities.Entry, 0)
	for rows.Next() {
		var entry entities.Entry
		var row entryRow
		var mood string

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Content,
			&mood,
			&row.createdAt,
			&entry.HasAIResponse,
			&row.legacyDate,
			&row.legacyTime,
		)
		if err != nil {
			log.Error(ctx, "error scanning diary entry", zap.Error(err))
			return nil, fmt.Errorf("error scanning diary entry: %w", err)
		}

		entry.Mood, _ = entities.ParseMood(mood)
		row.apply(&entry)
		entriesList = append(entriesList, &entry)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entriesList, nil
}

// DeleteByID удаляет запись пользователя по идентификатору.
func (r *EntryRepository) DeleteByID(ctx context.Context, userID, entryID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "DeleteByID"))

	query := `
        DELETE FROM entries
        WHERE id = $1 AND user_id = $2
    `

	result, err := r.pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		log.Error(ctx, "error deleting diary entry", zap.Error(err))
		return fmt.Errorf("error deleting diary entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "entry not found for deletion", zap.String("id", entryID))
		return entities.ErrEntryNotFound
	}

	return nil
}
