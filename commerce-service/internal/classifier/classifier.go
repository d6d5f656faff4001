package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	ErrNoPredictions = errors.New("classifier returned no predictions")
	ErrUnavailable   = errors.New("classifier unavailable")
)

type Prediction struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type classifyRequest struct {
	Image string `json:"image"`
}

type classifyResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// Client calls the image classification model over HTTP.
type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]Prediction]
}

func NewClient(url string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: circuitbreaker.New[[]Prediction](circuitbreaker.Config{Name: "classifier"}, log),
	}
}

// Classify sends the base64 image payload and returns the predictions ordered by descending
// confidence.
func (c *Client) Classify(ctx context.Context, image string) ([]Prediction, error) {
	preds, err := c.breaker.Execute(func() ([]Prediction, error) {
		return c.classify(ctx, image)
	})
	if circuitbreaker.IsOpen(err) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return preds, err
}

func (c *Client) classify(ctx context.Context, image string) ([]Prediction, error) {
	body, err := json.Marshal(classifyRequest{Image: image})
	if err != nil {
		return nil, fmt.Errorf("marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var res classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}
	if len(res.Predictions) == 0 {
		return nil, ErrNoPredictions
	}

	slices.SortStableFunc(res.Predictions, func(a, b Prediction) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		}
		return 0
	})
	return res.Predictions, nil
}
