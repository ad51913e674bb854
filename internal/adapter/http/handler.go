package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"careerbuddy/internal/domain"
	"careerbuddy/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender is the outbound Telegram surface the handler drives.
type Sender interface {
	SendText(telegramUserID, text string) error
	SendTyping(telegramUserID string)
	SendDocument(telegramUserID, filename string, data []byte) error
	SendWelcomeMenu(telegramUserID string) error
	SendDocumentMenu(telegramUserID string, tier domain.Tier) error
	SendTemplateMenu(telegramUserID string) error
	AnswerCallback(callbackID string)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Deduper suppresses replayed webhook deliveries.
type Deduper interface {
	SeenOrMark(ctx context.Context, key string) bool
}

type Handler struct {
	router    *usecase.Router
	sender    Sender
	dedupe    Deduper
	artifacts usecase.Artifacts
	jobs      usecase.JobStore

	webhookToken   string
	paystackSecret string
	log            zerolog.Logger
}

func NewHandler(router *usecase.Router, sender Sender, dedupe Deduper, artifacts usecase.Artifacts, jobs usecase.JobStore, webhookToken, paystackSecret string, log zerolog.Logger) *Handler {
	return &Handler{
		router:         router,
		sender:         sender,
		dedupe:         dedupe,
		artifacts:      artifacts,
		jobs:           jobs,
		webhookToken:   webhookToken,
		paystackSecret: paystackSecret,
		log:            log,
	}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Post("/webhooks/telegram", h.TelegramWebhook)
	app.Post("/webhooks/paystack", h.PaystackWebhook)
	app.Get("/download/:job_id/:filename", h.Download)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// TelegramWebhook ingests one update. It always answers 200 once the update
// is authenticated and parsed; Telegram redelivers on anything else, and
// processing failures are not made better by a retry storm.
func (h *Handler) TelegramWebhook(c *fiber.Ctx) error {
	if h.webhookToken != "" && c.Get("X-Telegram-Bot-Api-Secret-Token") != h.webhookToken {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		h.log.Warn().Err(err).Msg("unparseable telegram update")
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if h.dedupe != nil && h.dedupe.SeenOrMark(c.Context(), fmt.Sprintf("tg:%d", update.UpdateID)) {
		h.log.Debug().Int("update_id", update.UpdateID).Msg("duplicate update suppressed")
		return c.SendStatus(fiber.StatusOK)
	}

	ctx := context.Background()
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Document != nil:
		h.handleUpload(ctx, update.Message)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	h.sender.SendTyping(userID)

	reply, err := h.router.HandleInbound(ctx, userID, msg.Text,
		strconv.Itoa(msg.MessageID), msg.From.UserName)
	if err != nil {
		h.log.Error().Err(err).Str("telegram_user_id", userID).Msg("inbound handling failed")
		_ = h.sender.SendText(userID, "😕 Something went wrong on my end. Please try again in a moment.")
		return
	}
	h.deliver(userID, reply)
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	h.sender.AnswerCallback(cb.ID)
	userID := strconv.FormatInt(cb.From.ID, 10)

	reply, err := h.router.HandleInbound(ctx, userID, cb.Data, "cb-"+cb.ID, cb.From.UserName)
	if err != nil {
		h.log.Error().Err(err).Str("telegram_user_id", userID).Msg("callback handling failed")
		_ = h.sender.SendText(userID, "😕 Something went wrong on my end. Please try again in a moment.")
		return
	}
	h.deliver(userID, reply)
}

func (h *Handler) handleUpload(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	doc := msg.Document

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".txt") {
		_ = h.sender.SendText(userID, "I can only read .txt files right now. Paste your resume text as a message instead!")
		return
	}

	data, err := h.sender.DownloadFile(ctx, doc.FileID)
	if err != nil {
		h.log.Error().Err(err).Str("file_id", doc.FileID).Msg("file download failed")
		_ = h.sender.SendText(userID, "I couldn't download that file. Try pasting the text instead.")
		return
	}

	reply, err := h.router.HandleUpload(ctx, userID, msg.From.UserName,
		strconv.Itoa(msg.MessageID), string(data), doc.FileName)
	if err != nil {
		h.log.Error().Err(err).Str("telegram_user_id", userID).Msg("upload handling failed")
		_ = h.sender.SendText(userID, "😕 Something went wrong on my end. Please try again in a moment.")
		return
	}
	h.deliver(userID, reply)
}

// deliver turns the dispatcher's reply into outbound Telegram calls.
func (h *Handler) deliver(telegramUserID string, reply usecase.Reply) {
	if reply.Text != "" {
		if err := h.sender.SendText(telegramUserID, reply.Text); err != nil {
			h.log.Error().Err(err).Msg("text delivery failed")
		}
	}

	switch reply.Action {
	case usecase.ActionShowMenu:
		if err := h.sender.SendWelcomeMenu(telegramUserID); err != nil {
			h.log.Error().Err(err).Msg("menu delivery failed")
		}
	case usecase.ActionShowDocumentMenu:
		if err := h.sender.SendDocumentMenu(telegramUserID, reply.Tier); err != nil {
			h.log.Error().Err(err).Msg("document menu delivery failed")
		}
	case usecase.ActionShowTemplateMenu:
		if err := h.sender.SendTemplateMenu(telegramUserID); err != nil {
			h.log.Error().Err(err).Msg("template menu delivery failed")
		}
	case usecase.ActionSendDocument:
		data, err := h.artifacts.Read(reply.JobID, domain.FileFinalPDF, reply.Filename)
		if err != nil {
			h.log.Error().Err(err).Str("job_id", reply.JobID.String()).Msg("artifact read failed")
			_ = h.sender.SendText(telegramUserID, "😕 I couldn't fetch your file. Reply */pdf* to retry.")
			return
		}
		if err := h.sender.SendDocument(telegramUserID, reply.Filename, data); err != nil {
			h.log.Error().Err(err).Msg("document delivery failed")
		}
	}
}

type paystackEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Metadata  struct {
			TelegramUserID string `json:"telegram_user_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// PaystackWebhook settles charge.success events. The signature is HMAC-SHA512
// of the raw body with the secret key; anything unsigned is dropped.
func (h *Handler) PaystackWebhook(c *fiber.Ctx) error {
	body := c.Body()

	mac := hmac.New(sha512.New, []byte(h.paystackSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(c.Get("X-Paystack-Signature"))) {
		h.log.Warn().Msg("paystack webhook with bad signature")
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var event paystackEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if event.Event != "charge.success" {
		return c.SendStatus(fiber.StatusOK)
	}
	if h.dedupe != nil && h.dedupe.SeenOrMark(c.Context(), "ps:"+event.Data.Reference) {
		return c.SendStatus(fiber.StatusOK)
	}

	ctx := context.Background()
	// fasthttp reuses the body buffer once the handler returns.
	raw := append([]byte(nil), body...)
	reply, settled, err := h.router.ConfirmPayment(ctx, event.Data.Reference, event.Data.Metadata.TelegramUserID, raw)
	if err != nil {
		h.log.Error().Err(err).Str("reference", event.Data.Reference).Msg("payment confirmation failed")
		return c.SendStatus(fiber.StatusOK)
	}
	if settled {
		h.deliver(event.Data.Metadata.TelegramUserID, reply)
	}
	return c.SendStatus(fiber.StatusOK)
}

// Download serves a generated artifact over HTTP as an alternative to the
// in-chat document.
func (h *Handler) Download(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}
	filename, err := url.PathUnescape(c.Params("filename"))
	if err != nil || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid filename"})
	}

	if _, err := h.jobs.ByID(context.Background(), jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	data, err := h.artifacts.Read(jobID, domain.FileFinalPDF, filename)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
