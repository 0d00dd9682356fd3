// Package diary содержит HTTP обработчики дневника.
package diary

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"lifebook/internal/diary/domain/entities"
	"lifebook/internal/gateway/app/dto"
	"lifebook/internal/gateway/ports/services"
	"lifebook/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerDraft      = "diary handler: draft changed"
	LogHandlerAssistant  = "diary handler: assistant state"
	LogHandlerSubmit     = "diary handler: submit entry"
	LogHandlerList       = "diary handler: list entries"
	LogHandlerDelete     = "diary handler: delete entry"
	LogHandlerDeleteAll  = "diary handler: delete all entries"
	LogHandlerMoodSeries = "diary handler: mood series"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidEntryID     = "invalid entry id"
	ErrMsgUnauthorized       = "unauthorized"
)

// Handler обработчик HTTP-запросов дневника.
type Handler struct {
	diaryService services.DiaryService
}

// NewHandler создает новый экземпляр обработчика дневника.
func NewHandler(diaryService services.DiaryService) *Handler {
	return &Handler{
		diaryService: diaryService,
	}
}

// userID извлекает идентификатор пользователя, установленный промежуточным ПО.
func userID(ctx fiber.Ctx) (string, error) {
	id, ok := ctx.Locals("userID").(string)
	if !ok || id == "" {
		return "", fmt.Errorf("getting user ID: %w", ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgUnauthorized,
		}))
	}
	return id, nil
}

// DraftChanged обрабатывает изменение черновика записи.
func (h *Handler) DraftChanged(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerDraft)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req dto.DraftRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return fmt.Errorf("binding JSON: %w", ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}))
	}

	state, err := h.diaryService.DraftChanged(requestCtx, uid, &req)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(http.StatusAccepted).JSON(state); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// AssistantState возвращает текущее состояние диалога с помощником.
func (h *Handler) AssistantState(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerAssistant)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	state, err := h.diaryService.AssistantState(requestCtx, uid)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(state); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// SubmitEntry обрабатывает сохранение записи дневника.
func (h *Handler) SubmitEntry(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSubmit)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitEntryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return fmt.Errorf("binding JSON: %w", ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}))
	}

	result, err := h.diaryService.SubmitEntry(requestCtx, uid, &req)
	if err != nil {
		return handleError(ctx, err)
	}

	status := http.StatusCreated
	if !result.Saved {
		// Пустой черновик молча игнорируется, ошибка сохранения отдается с причиной.
		status = http.StatusOK
		if result.Reason != "" {
			status = http.StatusBadGateway
		}
	}

	if err := ctx.Status(status).JSON(result); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListEntries возвращает записи пользователя от новых к старым.
func (h *Handler) ListEntries(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerList)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	entries, err := h.diaryService.ListEntries(requestCtx, uid)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(entries); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteEntry обрабатывает удаление одной записи.
func (h *Handler) DeleteEntry(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	entryID := ctx.Params("entry_id")
	if entryID == "" {
		log.Error(requestCtx, ErrMsgInvalidEntryID)
		return fmt.Errorf("validating request: %w", ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidEntryID,
		}))
	}

	if err := h.diaryService.DeleteEntry(requestCtx, uid, entryID); err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(http.StatusNoContent); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteAllEntries обрабатывает удаление всех записей пользователя.
func (h *Handler) DeleteAllEntries(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteAll)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	report, err := h.diaryService.DeleteAllEntries(requestCtx, uid)
	if err != nil {
		return handleError(ctx, err)
	}

	status := http.StatusOK
	if len(report.Failed) > 0 {
		status = http.StatusMultiStatus
	}

	if err := ctx.Status(status).JSON(report); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// MoodSeries возвращает точки графика настроения.
func (h *Handler) MoodSeries(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerMoodSeries)

	uid, err := userID(ctx)
	if err != nil {
		return err
	}

	series, err := h.diaryService.MoodSeries(requestCtx, uid)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(series); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// handleError обрабатывает ошибки и возвращает соответствующий HTTP-статус.
func handleError(ctx fiber.Ctx, err error) error {
	if errors.Is(err, entities.ErrEntryNotFound) {
		if err := ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": entities.ErrEntryNotFound.Error(),
		}); err != nil {
			return fmt.Errorf("error sending 404 response: %w", err)
		}
		return nil
	}

	if errors.Is(err, entities.ErrEmptyEntryID) {
		if err := ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": entities.ErrEmptyEntryID.Error(),
		}); err != nil {
			return fmt.Errorf("error sending 400 response: %w", err)
		}
		return nil
	}

	if err := ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}
