package dto

import "time"

// Форматы отображения даты и времени записи. Хранится только канонический
// момент создания, строки вычисляются на границе представления.
const (
	EntryDateLayout = "02/01/2006"
	EntryTimeLayout = "15:04:05"
)

// DraftRequest содержит текущий черновик записи.
type DraftRequest struct {
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// AssistantStateResponse содержит состояние диалога с помощником.
type AssistantStateResponse struct {
	IsPending          bool   `json:"is_pending"`
	Message            string `json:"message"`
	SuggestionsVisible bool   `json:"suggestions_visible"`
}

// SubmitEntryRequest содержит данные для сохранения записи дневника.
type SubmitEntryRequest struct {
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// SubmitEntryResponse содержит результат сохранения записи.
type SubmitEntryResponse struct {
	Saved   bool   `json:"saved"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// EntryResponse содержит одну запись дневника для отображения.
type EntryResponse struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	Mood          string     `json:"mood"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	HasAIResponse bool       `json:"has_ai_response"`
}

// EntriesResponse содержит список записей дневника.
type EntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// DeleteReportResponse содержит отчет о массовом удалении записей.
type DeleteReportResponse struct {
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// MoodPointResponse содержит одну точку графика настроения.
type MoodPointResponse struct {
	CreatedAt time.Time `json:"created_at"`
	Mood      string    `json:"mood"`
	Score     int       `json:"score"`
}

// MoodSeriesResponse содержит точки графика настроения.
type MoodSeriesResponse struct {
	Points []MoodPointResponse `json:"points"`
}
