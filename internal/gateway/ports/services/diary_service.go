package services

import (
	"context"

	"lifebook/internal/gateway/app/dto"
)

// DiaryService определяет интерфейс для работы с дневником пользователя.
type DiaryService interface {
	// DraftChanged передает черновик помощнику и возвращает текущее состояние диалога.
	DraftChanged(ctx context.Context, userID string, req *dto.DraftRequest) (*dto.AssistantStateResponse, error)

	// AssistantState возвращает текущее состояние диалога с помощником.
	AssistantState(ctx context.Context, userID string) (*dto.AssistantStateResponse, error)

	// SubmitEntry сохраняет запись дневника.
	SubmitEntry(ctx context.Context, userID string, req *dto.SubmitEntryRequest) (*dto.SubmitEntryResponse, error)

	// ListEntries возвращает записи пользователя от новых к старым.
	ListEntries(ctx context.Context, userID string) (*dto.EntriesResponse, error)

	// DeleteEntry удаляет одну запись пользователя.
	DeleteEntry(ctx context.Context, userID, entryID string) error

	// DeleteAllEntries удаляет все записи пользователя и возвращает отчет.
	DeleteAllEntries(ctx context.Context, userID string) (*dto.DeleteReportResponse, error)

	// MoodSeries возвращает точки графика настроения.
	MoodSeries(ctx context.Context, userID string) (*dto.MoodSeriesResponse, error)

	// DropSession закрывает сессию дневника пользователя.
	DropSession(userID string)
}
