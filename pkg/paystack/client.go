package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"careerbuddy/internal/domain"
	"careerbuddy/internal/usecase"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack REST API for transaction initialization and
// verification.
type Client struct {
	BaseURL string
	Secret  string
	HTTP    *http.Client

	CallbackURL string
}

func NewClient(secret, callbackURL string) *Client {
	return &Client{
		BaseURL:     defaultBaseURL,
		Secret:      secret,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
		CallbackURL: callbackURL,
	}
}

type initializeRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	Reference   string                 `json:"reference"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type initializeResponse struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
	Message string `json:"message"`
}

type verifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	} `json:"data"`
	Message string `json:"message"`
}

// CreatePaymentLink initializes a hosted checkout transaction. Telegram users
// rarely have a known email, so a synthetic per-user address is used; Paystack
// requires one but never mails it.
func (c *Client) CreatePaymentLink(ctx context.Context, u *domain.User, role string, amountKobo int64) (usecase.PaymentLink, error) {
	email := u.Email
	if email == "" {
		email = fmt.Sprintf("tg-%s@users.careerbuddy.app", u.TelegramUserID)
	}

	body, err := json.Marshal(initializeRequest{
		Email:       email,
		Amount:      amountKobo,
		Currency:    "NGN",
		Reference:   "cb-" + uuid.NewString(),
		CallbackURL: c.CallbackURL,
		Metadata: map[string]interface{}{
			"telegram_user_id": u.TelegramUserID,
			"role":             role,
		},
	})
	if err != nil {
		return usecase.PaymentLink{}, err
	}

	var out initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return usecase.PaymentLink{}, err
	}
	if !out.Status {
		return usecase.PaymentLink{}, fmt.Errorf("paystack initialize: %s", out.Message)
	}
	return usecase.PaymentLink{
		AuthorizationURL: out.Data.AuthorizationURL,
		Reference:        out.Data.Reference,
	}, nil
}

// VerifyPayment checks whether the transaction settled successfully.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	var out verifyResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return false, err
	}
	if !out.Status {
		return false, nil
	}
	return out.Data.Status == "success", nil
}

// do performs one authenticated request with retry and exponential backoff on
// transport errors and 5xx responses.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.Secret)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
		} else {
			data, rerr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if rerr != nil {
				lastErr = rerr
			} else if resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("paystack %s: status %d", path, resp.StatusCode)
			} else if resp.StatusCode >= 400 {
				return fmt.Errorf("paystack %s: status %d: %s", path, resp.StatusCode, data)
			} else {
				return json.Unmarshal(data, out)
			}
		}

		if i < attempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
