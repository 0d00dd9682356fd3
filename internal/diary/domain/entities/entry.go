// Package entities содержит основные бизнес-сущности дневника.
package entities

import (
	"errors"
	"time"
)

// Ошибки доменного уровня для работы с записями дневника.
var (
	// ErrEmptyEntryID возникает при передаче пустого идентификатора записи.
	ErrEmptyEntryID = errors.New("entry ID cannot be empty")
	// ErrEmptyContent возникает при попытке сохранить запись без содержимого.
	ErrEmptyContent = errors.New("entry content cannot be empty")
	// ErrEntryNotFound возникает, когда запись не найдена в хранилище.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrUnknownMood возникает при передаче значения настроения вне перечисления.
	ErrUnknownMood = errors.New("unknown mood value")
)

// Mood представляет настроение, выбранное пользователем для записи.
type Mood string

// Допустимые значения настроения.
const (
	MoodExcited Mood = "Excited"
	MoodHappy   Mood = "Happy"
	MoodNeutral Mood = "Neutral"
	MoodSad     Mood = "Sad"
	MoodAnxious Mood = "Anxious"
)

// Moods перечисляет все допустимые настроения в порядке убывания оценки.
var Moods = []Mood{MoodExcited, MoodHappy, MoodNeutral, MoodSad, MoodAnxious}

// ParseMood преобразует строку в Mood. Пустая строка трактуется как MoodNeutral.
func ParseMood(s string) (Mood, error) {
	switch Mood(s) {
	case MoodExcited, MoodHappy, MoodNeutral, MoodSad, MoodAnxious:
		return Mood(s), nil
	}
	if s == "" {
		return MoodNeutral, nil
	}
	return MoodNeutral, ErrUnknownMood
}

// Score возвращает числовую оценку настроения для построения графика (5 — лучшее, 1 — худшее).
func (m Mood) Score() int {
	switch m {
	case MoodExcited:
		return 5
	case MoodHappy:
		return 4
	case MoodNeutral:
		return 3
	case MoodSad:
		return 2
	case MoodAnxious:
		return 1
	}
	return 3
}

// Entry представляет одну сохраненную запись дневника.
//
// CreatedAt может отсутствовать у записей, импортированных из старого формата,
// где момент создания хранился только строками даты и времени. LegacyDate и
// LegacyTime сохраняются для таких записей и используются как запасной ключ
// сортировки.
type Entry struct {
	ID            string
	UserID        string
	Content       string
	Mood          Mood
	CreatedAt     *time.Time
	HasAIResponse bool
	LegacyDate    string
	LegacyTime    string
}

// LegacyKey возвращает строковый ключ сортировки для записей без CreatedAt.
func (e *Entry) LegacyKey() string {
	return e.LegacyDate + " " + e.LegacyTime
}

// MoodPoint представляет одну точку графика настроения.
type MoodPoint struct {
	CreatedAt time.Time
	Mood      Mood
	Score     int
}

// DeleteReport описывает результат массового удаления записей.
// Deleted содержит идентификаторы успешно удаленных записей, Failed — причины
// отказа по каждой записи, которую удалить не удалось.
type DeleteReport struct {
	Deleted []string
	Failed  map[string]string
}

// AllSucceeded сообщает, что ни одно удаление не завершилось ошибкой.
func (r *DeleteReport) AllSucceeded() bool {
	return len(r.Failed) == 0
}
