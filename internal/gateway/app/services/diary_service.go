package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"lifebook/internal/diary/domain/entities"
	diaryapi "lifebook/internal/diary/ports/api"
	"lifebook/internal/gateway/app/dto"
	"lifebook/internal/gateway/ports/cache"
	"lifebook/internal/gateway/ports/services"
	"lifebook/pkg/logger"
)

// Константы для логирования.
const (
	LogDraftChanged     = "forwarding draft to assistant"
	LogSubmitEntry      = "submitting diary entry"
	LogListEntries      = "listing diary entries"
	LogDeleteEntry      = "deleting diary entry"
	LogDeleteAllEntries = "deleting all diary entries"
	LogMoodSeries       = "building mood series"
	LogMoodCacheHit     = "mood series served from cache"

	ErrCtxSubmitEntry = "submitting entry"
	ErrCtxListEntries = "listing entries"
	ErrCtxDeleteAll   = "deleting all entries"
	ErrCtxMoodSeries  = "building mood series"

	moodCacheKeyPrefix = "lifebook:moods:"
)

// AssistantProvider выдает помощника дневника по идентификатору пользователя.
type AssistantProvider interface {
	Get(userID string) diaryapi.DiaryAssistant
	Drop(userID string)
}

// DiaryServiceImpl реализует интерфейс services.DiaryService.
// Точки графика настроения кэшируются и сбрасываются при любом изменении
// набора записей пользователя.
type DiaryServiceImpl struct {
	sessions AssistantProvider
	cache    cache.Cache
}

// NewDiaryService создает новый сервис дневника HTTP-слоя.
func NewDiaryService(sessions AssistantProvider, moodCache cache.Cache) services.DiaryService {
	return &DiaryServiceImpl{
		sessions: sessions,
		cache:    moodCache,
	}
}

// DraftChanged передает черновик помощнику и возвращает состояние диалога.
func (s *DiaryServiceImpl) DraftChanged(ctx context.Context, userID string, req *dto.DraftRequest) (*dto.AssistantStateResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "diary"), zap.String("userID", userID))
	log.Debug(ctx, LogDraftChanged)

	mood, _ := entities.ParseMood(req.Mood)
	assistant := s.sessions.Get(userID)
	assistant.OnDraftChanged(ctx, req.Content, mood)

	return stateToResponse(assistant.State()), nil
}

// AssistantState возвращает текущее состояние диалога с помощником.
func (s *DiaryServiceImpl) AssistantState(_ context.Context, userID string) (*dto.AssistantStateResponse, error) {
	return stateToResponse(s.sessions.Get(userID).State()), nil
}

// SubmitEntry сохраняет запись дневника.
func (s *DiaryServiceImpl) SubmitEntry(ctx context.Context, userID string, req *dto.SubmitEntryRequest) (*dto.SubmitEntryResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "diary"), zap.String("userID", userID))
	log.Debug(ctx, LogSubmitEntry)

	mood, _ := entities.ParseMood(req.Mood)
	assistant := s.sessions.Get(userID)

	saved, reason := assistant.SubmitEntry(ctx, req.Content, mood)
	if saved {
		s.invalidateMoodCache(ctx, userID)
	}

	return &dto.SubmitEntryResponse{
		Saved:   saved,
		Reason:  reason,
		Message: assistant.State().Message,
	}, nil
}

// ListEntries возвращает записи пользователя от новых к старым.
func (s *DiaryServiceImpl) ListEntries(ctx context.Context, userID string) (*dto.EntriesResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "diary"), zap.String("userID", userID))
	log.Debug(ctx, LogListEntries)

	entriesList, err := s.sessions.Get(userID).ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxListEntries, err)
	}

	resp := &dto.EntriesResponse{
		Entries: make([]dto.EntryResponse, 0, len(entriesList)),
		Total:   len(entriesList),
	}
	for _, entry := range entriesList {
		resp.Entries = append(resp.Entries, entryToResponse(entry))
	}
	return resp, nil
}

// DeleteEntry удаляет одну запись пользователя.
func (s *DiaryServiceImpl) DeleteEntry(ctx context.Context, userID, entryID string) error {
	log := logger.Log(ctx).With(zap.String("service", "diary"), zap.String("userID", userID))
	log.Debug(ctx, LogDeleteEntry)

	if err := s.sessions.Get(userID).DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	s.invalidateMoodCache(ctx, userID)
	return nil
}

// DeleteAllEntries удаляет все записи пользователя и возвращает отчет.
func (s *DiaryServiceImpl) DeleteAllEntries(ctx context.Context, userID string) (*dto.DeleteReportResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "diary"), zap.String("userID", userID))
	log.Debug(ctx, LogDeleteAllEntries)

	report, err := s.sessions.Get(userID).DeleteAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxDeleteAll, err)
	}

	if len(report.Deleted) > 0 {
		s.invalidateMoodCache(ctx, userID)
	}

	resp := &dto.DeleteReportResponse{Deleted: report.Deleted}
	if len(report.Failed) > 0 {
		resp.Failed = report.Failed
	}
	return resp, nil
}

// MoodSeries возвращает точки графика настроения, используя кэш.
func (s *DiaryServiceImpl) MoodSeries(ctx context.Context, userID string) (*dto.MoodSeriesResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "diary"), zap.String("userID", userID))
	log.Debug(ctx, LogMoodSeries)

	key := moodCacheKeyPrefix + userID
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var resp dto.MoodSeriesResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			log.Debug(ctx, LogMoodCacheHit)
			return &resp, nil
		}
	}

	points, err := s.sessions.Get(userID).MoodSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxMoodSeries, err)
	}

	resp := &dto.MoodSeriesResponse{Points: make([]dto.MoodPointResponse, 0, len(points))}
	for _, point := range points {
		resp.Points = append(resp.Points, dto.MoodPointResponse{
			CreatedAt: point.CreatedAt,
			Mood:      string(point.Mood),
			Score:     point.Score,
		})
	}

	if payload, err := json.Marshal(resp); err == nil {
		// Ошибка кэширования не мешает отдать ответ.
		_ = s.cache.Set(ctx, key, string(payload), 0)
	}

	return resp, nil
}

// DropSession закрывает сессию дневника пользователя.
func (s *DiaryServiceImpl) DropSession(userID string) {
	s.sessions.Drop(userID)
}

// invalidateMoodCache сбрасывает кэш графика настроения пользователя.
func (s *DiaryServiceImpl) invalidateMoodCache(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, moodCacheKeyPrefix+userID); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate mood cache", zap.Error(err))
	}
}

// stateToResponse преобразует состояние диалога в DTO.
func stateToResponse(state entities.ConsultationState) *dto.AssistantStateResponse {
	return &dto.AssistantStateResponse{
		IsPending:          state.IsPending,
		Message:            state.Message,
		SuggestionsVisible: state.SuggestionsVisible,
	}
}

// entryToResponse преобразует запись в DTO, вычисляя строки даты и времени.
func entryToResponse(entry *entities.Entry) dto.EntryResponse {
	resp := dto.EntryResponse{
		ID:            entry.ID,
		Content:       entry.Content,
		Mood:          string(entry.Mood),
		CreatedAt:     entry.CreatedAt,
		Date:          entry.LegacyDate,
		Time:          entry.LegacyTime,
		HasAIResponse: entry.HasAIResponse,
	}
	if entry.CreatedAt != nil {
		resp.Date = entry.CreatedAt.Format(dto.EntryDateLayout)
		resp.Time = entry.CreatedAt.Format(dto.EntryTimeLayout)
	}
	return resp
}
