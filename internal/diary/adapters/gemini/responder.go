// Package gemini предоставляет реализацию AI-помощника на базе Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"lifebook/internal/diary/ports/services"
	"lifebook/pkg/logger"
)

const (
	methodRespond      = "Respond"
	msgSendingPrompt   = "sending prompt to gemini"
	msgReplyReceived   = "gemini reply received"
	errMsgGenerating   = "error generating content"
	errCtxCreateClient = "creating gemini client"
	errCtxGenerating   = "generating reply"
)

// Ошибки адаптера Gemini.
var (
	ErrEmptyAPIKey = errors.New("gemini API key is required")
	ErrEmptyReply  = errors.New("gemini returned an empty reply")
)

// Responder реализует интерфейс services.Responder через Gemini API.
type Responder struct {
	client *genai.Client
	model  string
}

// NewResponder создает клиента Gemini для генерации ответов помощника.
func NewResponder(ctx context.Context, apiKey, model string) (services.Responder, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreateClient, err)
	}

	return &Responder{client: client, model: model}, nil
}

// Respond отправляет промпт модели и возвращает текст ответа.
func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRespond),
		zap.String("model", r.model),
	)
	log.Debug(ctx, msgSendingPrompt)

	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
	if err != nil {
		log.Error(ctx, errMsgGenerating, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGenerating, err)
	}

	reply := resp.Text()
	if reply == "" {
		log.Warn(ctx, "gemini reply is empty")
		return "", ErrEmptyReply
	}

	log.Debug(ctx, msgReplyReceived)
	return reply, nil
}
