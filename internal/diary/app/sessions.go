package app

import (
	"sync"

	"lifebook/internal/diary/ports/api"
	"lifebook/internal/diary/ports/repositories"
	"lifebook/internal/diary/ports/services"
)

// Sessions хранит помощников дневника по идентификатору пользователя.
// Помощник создается лениво при первом обращении и живет до выхода
// пользователя из системы.
type Sessions struct {
	entries   repositories.EntryRepository
	responder services.Responder

	mu         sync.Mutex
	assistants map[string]*Assistant
}

// NewSessions создает реестр сессий дневника.
func NewSessions(entries repositories.EntryRepository, responder services.Responder) *Sessions {
	return &Sessions{
		entries:    entries,
		responder:  responder,
		assistants: make(map[string]*Assistant),
	}
}

// Get возвращает помощника для пользователя, создавая его при необходимости.
func (s *Sessions) Get(userID string) api.DiaryAssistant {
	s.mu.Lock()
	defer s.mu.Unlock()

	assistant, ok := s.assistants[userID]
	if !ok {
		assistant = NewAssistant(userID, s.entries, s.responder)
		s.assistants[userID] = assistant
	}
	return assistant
}

// Drop удаляет сессию пользователя. Вызывается при выходе из системы.
func (s *Sessions) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assistants, userID)
}

// Wait блокируется до завершения фоновых консультаций всех сессий.
// Используется при остановке сервиса.
func (s *Sessions) Wait() {
	s.mu.Lock()
	assistants := make([]*Assistant, 0, len(s.assistants))
	for _, assistant := range s.assistants {
		assistants = append(assistants, assistant)
	}
	s.mu.Unlock()

	for _, assistant := range assistants {
		assistant.Wait()
	}
}
