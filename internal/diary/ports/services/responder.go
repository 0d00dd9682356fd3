// Package services определяет интерфейсы внешних сервисов дневника.
package services

import "context"

// Responder определяет контракт генерации эмпатичного ответа на текст пользователя.
type Responder interface {
	// Respond отправляет подготовленный промпт и возвращает текст ответа.
	Respond(ctx context.Context, prompt string) (string, error)
}
