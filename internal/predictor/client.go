package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"bigfive-relay/internal/domain"
)

// ErrUpstream agrupa cualquier fallo de la llamada al servicio de prediccion:
// red, timeout, status no-2xx o cuerpo que no es un objeto JSON.
var ErrUpstream = errors.New("upstream prediction failed")

// UpstreamError describe un fallo concreto del upstream. Su mensaje es el que ve el
// cliente en details; errors.Is(err, ErrUpstream) es siempre true.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// Predictor define la interfaz para obtener una prediccion Big Five.
type Predictor interface {
	Predict(ctx context.Context, payload []byte) (domain.BigFivePrediction, error)
}

// HTTPClient implementa Predictor reenviando el payload al servicio remoto.
type HTTPClient struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPClient construye un cliente contra el endpoint /predict.
// Un timeout de 0 deja el comportamiento por defecto de net/http (sin limite).
func NewHTTPClient(url string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (c *HTTPClient) Predict(ctx context.Context, payload []byte) (domain.BigFivePrediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return domain.BigFivePrediction{}, &UpstreamError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.BigFivePrediction{}, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.BigFivePrediction{}, &UpstreamError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("upstream error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 512)),
		)
		return domain.BigFivePrediction{}, &UpstreamError{StatusCode: resp.StatusCode}
	}

	// Un mapa conserva las claves exactas; el decode a struct las compara sin mayusculas.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &fields); err != nil {
		return domain.BigFivePrediction{}, &UpstreamError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if fields == nil {
		return domain.BigFivePrediction{}, &UpstreamError{Err: errors.New("unmarshal response: body is null")}
	}

	return domain.NewBigFivePrediction(fields), nil
}

func truncate(b []byte, max int) []byte {
	if len(b) <= max {
		return b
	}
	return b[:max]
}
