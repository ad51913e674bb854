package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"careerbuddy/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Client wraps the Bot API for outbound delivery: texts, documents and the
// inline keyboard menus the conversation offers.
type Client struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

func NewClient(token string, log zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	log.Info().Str("bot", api.Self.UserName).Msg("telegram bot authorized")
	return &Client{api: api, log: log}, nil
}

// SetWebhook registers the webhook URL with a secret token that Telegram
// echoes back on every delivery. The library's WebhookConfig predates the
// secret_token parameter, so this goes through a raw API call.
func (c *Client) SetWebhook(url, secretToken string) error {
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", secretToken)
	_, err := c.api.MakeRequest("setWebhook", params)
	return err
}

func chatID(telegramUserID string) int64 {
	id, _ := strconv.ParseInt(telegramUserID, 10, 64)
	return id
}

func (c *Client) SendText(telegramUserID, text string) error {
	msg := tgbotapi.NewMessage(chatID(telegramUserID), text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.api.Send(msg); err != nil {
		// Markdown parse failures are common with user-supplied text; retry plain.
		msg.ParseMode = ""
		if _, err2 := c.api.Send(msg); err2 != nil {
			return fmt.Errorf("send text: %w", err2)
		}
	}
	return nil
}

// Notify satisfies the dispatcher's broadcast interface.
func (c *Client) Notify(_ context.Context, telegramUserID, text string) error {
	return c.SendText(telegramUserID, text)
}

func (c *Client) SendTyping(telegramUserID string) {
	action := tgbotapi.NewChatAction(chatID(telegramUserID), tgbotapi.ChatTyping)
	if _, err := c.api.Request(action); err != nil {
		c.log.Debug().Err(err).Msg("chat action failed")
	}
}

func (c *Client) SendDocument(telegramUserID, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID(telegramUserID), tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	if _, err := c.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// SendWelcomeMenu shows the plan selection keyboard.
func (c *Client) SendWelcomeMenu(telegramUserID string) error {
	msg := tgbotapi.NewMessage(chatID(telegramUserID),
		"👋 *Welcome to CareerBuddy!*\n\n"+
			"I create professional, ATS-friendly career documents right here in chat.\n\n"+
			"Pick a plan to get going:")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆓 Free", "free"),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Premium", "premium"),
		),
	)
	_, err := c.api.Send(msg)
	return err
}

// SendDocumentMenu shows the document type keyboard. Cover letters are
// listed for everyone; the dispatcher gates free users with an upsell.
func (c *Client) SendDocumentMenu(telegramUserID string, tier domain.Tier) error {
	msg := tgbotapi.NewMessage(chatID(telegramUserID), "What would you like to create?")
	cover := "✉️ Cover Letter"
	if tier == domain.TierFree {
		cover = "✉️ Cover Letter 🔒"
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Resume", "choose_resume"),
			tgbotapi.NewInlineKeyboardButtonData("📋 CV", "choose_cv"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(cover, "choose_cover"),
			tgbotapi.NewInlineKeyboardButtonData("✨ Revamp", "choose_revamp"),
		),
	)
	_, err := c.api.Send(msg)
	return err
}

// SendTemplateMenu shows the premium template picker.
func (c *Client) SendTemplateMenu(telegramUserID string) error {
	msg := tgbotapi.NewMessage(chatID(telegramUserID), "Pick a template:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Classic", "template_classic"),
			tgbotapi.NewInlineKeyboardButtonData("Modern", "template_modern"),
			tgbotapi.NewInlineKeyboardButtonData("Elegant", "template_elegant"),
		),
	)
	_, err := c.api.Send(msg)
	return err
}

func (c *Client) AnswerCallback(callbackID string) {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		c.log.Debug().Err(err).Msg("callback ack failed")
	}
}

// DownloadFile fetches an uploaded file's bytes by its Telegram file id.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
