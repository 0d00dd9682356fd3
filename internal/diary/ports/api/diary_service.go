// Package api определяет интерфейсы прикладного уровня дневника.
package api

import (
	"context"

	"lifebook/internal/diary/domain/entities"
)

// DiaryAssistant определяет операции дневника для одного пользователя:
// реакцию на изменение черновика, сохранение записей и работу с историей.
type DiaryAssistant interface {
	// OnDraftChanged обрабатывает изменение черновика и при достижении
	// контрольной длины запускает фоновую консультацию с AI.
	OnDraftChanged(ctx context.Context, draft string, mood entities.Mood)

	// SubmitEntry сохраняет запись дневника. Возвращает признак успеха и,
	// при ошибке сохранения, человекочитаемую причину. Пустое содержимое
	// не является ошибкой: операция молча ничего не делает.
	SubmitEntry(ctx context.Context, content string, mood entities.Mood) (bool, string)

	// ListEntries возвращает записи пользователя, отсортированные по убыванию
	// времени создания.
	ListEntries(ctx context.Context) ([]*entities.Entry, error)

	// DeleteEntry удаляет одну запись пользователя.
	DeleteEntry(ctx context.Context, entryID string) error

	// DeleteAllEntries удаляет все записи пользователя и возвращает отчет
	// о том, какие удаления завершились успешно, а какие нет.
	DeleteAllEntries(ctx context.Context) (*entities.DeleteReport, error)

	// MoodSeries возвращает точки графика настроения по возрастанию времени.
	MoodSeries(ctx context.Context) ([]entities.MoodPoint, error)

	// State возвращает текущее состояние диалога с помощником.
	State() entities.ConsultationState

	// Reset сбрасывает состояние диалога к приветствию.
	Reset()

	// Wait блокируется до завершения всех фоновых консультаций.
	Wait()
}
