package utils

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client for the hosted payment page. A checkout session is created against
// the provider, the shopper is redirected to the returned URL, and the
// provider calls the webhook back with the session id once payment settles.

func getPaymentConfig() (baseURL, clientKey, clientSecret, callbackURL string, err error) {
	baseURL = os.Getenv("GRIDPAY_BASE_URL")
	clientKey = os.Getenv("GRIDPAY_CLIENT_KEY")
	clientSecret = os.Getenv("GRIDPAY_CLIENT_SECRET")
	callbackURL = os.Getenv("GRIDPAY_CALLBACK_URL")

	if baseURL == "" {
		baseURL = "https://api.gridpay.dev"
	}
	if clientKey == "" || clientSecret == "" || callbackURL == "" {
		return "", "", "", "", fmt.Errorf("GRIDPAY_CLIENT_KEY, GRIDPAY_CLIENT_SECRET and GRIDPAY_CALLBACK_URL are required")
	}
	return baseURL, clientKey, clientSecret, callbackURL, nil
}

func paymentTimestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z07:00")
}

// signPayload produces the hex HMAC-SHA512 the provider expects over the
// raw request body.
func signPayload(payload []byte, clientSecret string) string {
	mac := hmac.New(sha512.New, []byte(clientSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

type checkoutSessionRequest struct {
	SessionID   string `json:"session_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
	CallbackURL string `json:"callback_url"`
	Timestamp   string `json:"timestamp"`
}

type checkoutSessionResponse struct {
	RedirectURL string `json:"redirect_url"`
	Message     string `json:"message"`
}

// CreateCheckoutSession registers a payment session with the provider and
// returns the session id plus the hosted payment page URL. The session id is
// generated here and doubles as the transaction id in the ledger.
func CreateCheckoutSession(ctx context.Context, amount decimal.Decimal, method string) (sessionID, redirectURL string, err error) {
	baseURL, clientKey, clientSecret, callbackURL, err := getPaymentConfig()
	if err != nil {
		return "", "", err
	}

	sessionID = uuid.NewString()
	body, err := json.Marshal(checkoutSessionRequest{
		SessionID:   sessionID,
		Amount:      amount.StringFixed(2),
		Currency:    getenvDefault("GRIDPAY_CURRENCY", "USD"),
		Method:      method,
		CallbackURL: callbackURL,
		Timestamp:   paymentTimestamp(),
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Key", clientKey)
	req.Header.Set("X-Signature", signPayload(body, clientSecret))

	httpClient := &http.Client{Timeout: 15 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", err
	}

	var parsed checkoutSessionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", "", fmt.Errorf("payment provider returned unparseable body: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("payment provider rejected session: %s", parsed.Message)
	}
	if parsed.RedirectURL == "" {
		return "", "", fmt.Errorf("payment provider returned no redirect URL")
	}
	return sessionID, parsed.RedirectURL, nil
}

// VerifyWebhookSignature checks the provider's HMAC over the raw webhook
// body against the X-Signature header value.
func VerifyWebhookSignature(body []byte, signature string) bool {
	clientSecret := os.Getenv("GRIDPAY_CLIENT_SECRET")
	if clientSecret == "" || signature == "" {
		return false
	}
	expected := signPayload(body, clientSecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
