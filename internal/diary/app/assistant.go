// Package app реализует прикладную логику дневника: политику консультаций
// с AI-помощником при наборе черновика и контракт сохранения записей.
package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"lifebook/internal/diary/domain/entities"
	"lifebook/internal/diary/ports/api"
	"lifebook/internal/diary/ports/repositories"
	"lifebook/internal/diary/ports/services"
	"lifebook/pkg/logger"
)

// Политика консультаций: черновик отправляется помощнику на каждой контрольной
// длине, кратной ConsultStride, при условии что осмысленная часть текста не
// короче MinDraftLength. Проверка срабатывает только на точных кратных, поэтому
// быстрый набор, перескочивший через кратное, консультацию пропускает.
const (
	ConsultStride  = 40
	MinDraftLength = 10

	promptTemplate = "Respond to the following diary entry gently, with empathy and a positive tone:\n%q"
)

const (
	methodOnDraftChanged   = "OnDraftChanged"
	methodSubmitEntry      = "SubmitEntry"
	methodListEntries      = "ListEntries"
	methodDeleteEntry      = "DeleteEntry"
	methodDeleteAllEntries = "DeleteAllEntries"
	methodMoodSeries       = "MoodSeries"

	msgConsultationStarted  = "consultation started"
	msgConsultationDone     = "consultation finished"
	msgConsultationFailed   = "consultation failed, falling back to static reply"
	msgEntrySaved           = "diary entry saved"
	msgSubmitSkipped        = "submit skipped: nothing to save"
	msgEntriesListed        = "diary entries listed"
	msgEntryDeleted         = "diary entry deleted"
	msgAllEntriesDeleted    = "bulk deletion finished"
	msgErrSavingEntry       = "failed to save diary entry"
	msgErrListingEntries    = "failed to list diary entries"
	msgErrDeletingEntry     = "failed to delete diary entry"
	msgErrListingForCleanup = "failed to list entries for bulk deletion"

	errCtxSavingEntry    = "saving diary entry"
	errCtxListingEntries = "listing diary entries"
	errCtxDeletingEntry  = "deleting diary entry"
)

// Assistant управляет дневником одного пользователя: хранит эфемерное
// состояние диалога с помощником и выполняет операции над записями.
//
// Конкурентный контракт консультаций: запросы не ставятся в очередь и не
// отменяются. Если контрольная длина сработала до завершения предыдущего
// запроса, оба выполняются параллельно, и видимым остается ответ того,
// который завершился последним.
type Assistant struct {
	userID    string
	entries   repositories.EntryRepository
	responder services.Responder

	mu    sync.Mutex
	state entities.ConsultationState
	wg    sync.WaitGroup
}

// NewAssistant создает помощника дневника для указанного пользователя.
func NewAssistant(userID string, entries repositories.EntryRepository, responder services.Responder) *Assistant {
	return &Assistant{
		userID:    userID,
		entries:   entries,
		responder: responder,
		state:     entities.NewConsultationState(),
	}
}

// Compile-time проверка соответствия интерфейсу.
var _ api.DiaryAssistant = (*Assistant)(nil)

// shouldConsult проверяет условие запуска консультации для текущего черновика.
func shouldConsult(draft string) bool {
	trimmed := strings.TrimSpace(draft)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < MinDraftLength {
		return false
	}
	length := utf8.RuneCountInString(draft)
	return length > 0 && length%ConsultStride == 0
}

// OnDraftChanged обрабатывает изменение черновика. При срабатывании условия
// контрольной длины запускает фоновую консультацию с помощником.
func (a *Assistant) OnDraftChanged(ctx context.Context, draft string, _ entities.Mood) {
	if !shouldConsult(draft) {
		return
	}

	log := logger.Log(ctx).With(
		zap.String("method", methodOnDraftChanged),
		zap.String("userID", a.userID),
	)
	log.Debug(ctx, msgConsultationStarted, zap.Int("draftLength", utf8.RuneCountInString(draft)))

	a.mu.Lock()
	a.state.IsPending = true
	a.state.SuggestionsVisible = false
	a.mu.Unlock()

	// Запрос переживает исходный HTTP-запрос и не отменяется вместе с ним.
	consultCtx := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.consult(consultCtx, draft)
	}()
}

// consult выполняет один запрос к помощнику и применяет результат к состоянию.
func (a *Assistant) consult(ctx context.Context, draft string) {
	log := logger.Log(ctx).With(
		zap.String("method", methodOnDraftChanged),
		zap.String("userID", a.userID),
	)

	reply, err := a.responder.Respond(ctx, fmt.Sprintf(promptTemplate, draft))

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		log.Warn(ctx, msgConsultationFailed, zap.Error(err))
		a.state.Message = entities.FallbackMessage
	} else {
		log.Debug(ctx, msgConsultationDone)
		a.state.Message = reply
		a.state.SuggestionsVisible = true
	}
	a.state.IsPending = false
}

// SubmitEntry сохраняет запись дневника. Пустое содержимое или отсутствующий
// пользователь не являются ошибкой: операция молча ничего не делает.
// При ошибке сохранения состояние диалога и черновик не сбрасываются,
// чтобы пользователь не потерял текст.
func (a *Assistant) SubmitEntry(ctx context.Context, content string, mood entities.Mood) (bool, string) {
	log := logger.Log(ctx).With(
		zap.String("method", methodSubmitEntry),
		zap.String("userID", a.userID),
	)

	if a.userID == "" || strings.TrimSpace(content) == "" {
		log.Debug(ctx, msgSubmitSkipped)
		return false, ""
	}

	a.mu.Lock()
	hasAIResponse := a.state.Message != entities.GreetingMessage
	a.mu.Unlock()

	now := time.Now().UTC()
	entry := &entities.Entry{
		UserID:        a.userID,
		Content:       content,
		Mood:          mood,
		CreatedAt:     &now,
		HasAIResponse: hasAIResponse,
	}

	if _, err := a.entries.Create(ctx, entry); err != nil {
		log.Error(ctx, msgErrSavingEntry, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxSavingEntry, err).Error()
	}

	a.mu.Lock()
	a.state = entities.ConsultationState{Message: entities.ThankYouMessage}
	a.mu.Unlock()

	log.Info(ctx, msgEntrySaved, zap.String("mood", string(mood)))
	return true, ""
}

// ListEntries возвращает записи пользователя, отсортированные по убыванию
// времени создания. Записи без CreatedAt сравниваются по строковому ключу
// из унаследованных полей даты и времени; порядок равных элементов сохраняется.
func (a *Assistant) ListEntries(ctx context.Context) ([]*entities.Entry, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodListEntries),
		zap.String("userID", a.userID),
	)

	entriesList, err := a.entries.ListByUser(ctx, a.userID)
	if err != nil {
		log.Error(ctx, msgErrListingEntries, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingEntries, err)
	}

	sort.SliceStable(entriesList, func(i, j int) bool {
		left, right := entriesList[i], entriesList[j]
		if left.CreatedAt != nil && right.CreatedAt != nil {
			return left.CreatedAt.After(*right.CreatedAt)
		}
		return left.LegacyKey() > right.LegacyKey()
	})

	log.Debug(ctx, msgEntriesListed, zap.Int("count", len(entriesList)))
	return entriesList, nil
}

// DeleteEntry удаляет одну запись пользователя.
func (a *Assistant) DeleteEntry(ctx context.Context, entryID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteEntry),
		zap.String("userID", a.userID),
		zap.String("entryID", entryID),
	)

	if entryID == "" {
		return entities.ErrEmptyEntryID
	}

	if err := a.entries.DeleteByID(ctx, a.userID, entryID); err != nil {
		log.Error(ctx, msgErrDeletingEntry, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingEntry, err)
	}

	log.Info(ctx, msgEntryDeleted)
	return nil
}

// DeleteAllEntries удаляет все записи пользователя. Частичный отказ не
// скрывается: отчет перечисляет успешно удаленные записи и причины отказа
// по каждой оставшейся.
func (a *Assistant) DeleteAllEntries(ctx context.Context) (*entities.DeleteReport, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteAllEntries),
		zap.String("userID", a.userID),
	)

	entriesList, err := a.entries.ListByUser(ctx, a.userID)
	if err != nil {
		log.Error(ctx, msgErrListingForCleanup, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingEntries, err)
	}

	report := &entities.DeleteReport{Failed: make(map[string]string)}
	for _, entry := range entriesList {
		if err := a.entries.DeleteByID(ctx, a.userID, entry.ID); err != nil {
			report.Failed[entry.ID] = err.Error()
			continue
		}
		report.Deleted = append(report.Deleted, entry.ID)
	}

	log.Info(ctx, msgAllEntriesDeleted,
		zap.Int("deleted", len(report.Deleted)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}

// MoodSeries возвращает точки графика настроения по возрастанию времени.
// Записи без CreatedAt в график не попадают.
func (a *Assistant) MoodSeries(ctx context.Context) ([]entities.MoodPoint, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodMoodSeries),
		zap.String("userID", a.userID),
	)

	entriesList, err := a.entries.ListByUser(ctx, a.userID)
	if err != nil {
		log.Error(ctx, msgErrListingEntries, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingEntries, err)
	}

	points := make([]entities.MoodPoint, 0, len(entriesList))
	for _, entry := range entriesList {
		if entry.CreatedAt == nil {
			continue
		}
		points = append(points, entities.MoodPoint{
			CreatedAt: *entry.CreatedAt,
			Mood:      entry.Mood,
			Score:     entry.Mood.Score(),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].CreatedAt.Before(points[j].CreatedAt)
	})

	return points, nil
}

// State возвращает копию текущего состояния диалога.
func (a *Assistant) State() entities.ConsultationState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Reset сбрасывает состояние диалога к приветствию.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = entities.NewConsultationState()
}

// Wait блокируется до завершения всех фоновых консультаций.
func (a *Assistant) Wait() {
	a.wg.Wait()
}
