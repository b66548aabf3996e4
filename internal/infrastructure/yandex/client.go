package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

const (
	// DefaultBaseURL is the Yandex.Translate JSON API v1.5 root.
	DefaultBaseURL = "https://translate.yandex.net/api/v1.5/tr.json"
	// DefaultTimeout caps a single HTTP round trip; callers usually pass a
	// shorter context deadline.
	DefaultTimeout = 30 * time.Second

	maxResponseSize = 1 << 20
)

var _ output.TranslationService = (*Client)(nil)

// Client calls the Yandex.Translate "translate" method.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

// Translate sends text to be translated into targetLang. The decoded body is
// returned even for API-level errors (non-200 "code"); err is set only when
// the request fails or the body is not a JSON object.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (*entities.TranslationResult, error) {
	log := c.logger.WithFields(logrus.Fields{
		"target_lang": targetLang,
		"text_length": len(text),
	})
	log.Debug("Translating text with Yandex.Translate")

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("text", text)
	form.Set("lang", targetLang)

	endpoint := c.baseURL + "/translate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Translation request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	log = log.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	var result entities.TranslationResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.WithError(err).WithField("response", string(body)).Error("Failed to decode translation response")
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if result.Code != http.StatusOK {
		log.WithFields(logrus.Fields{
			"code":    result.Code,
			"message": result.Message,
		}).Warn("Translation API returned an error code")
	} else {
		log.Debug("Translation request completed")
	}
	return &result, nil
}
