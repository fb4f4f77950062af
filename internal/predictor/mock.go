package predictor

import (
	"context"
	"sync"

	"bigfive-relay/internal/domain"
)

// MockClient permite tests sin llamar al servicio de prediccion real.
type MockClient struct {
	Response domain.BigFivePrediction
	Err      error

	mu          sync.Mutex
	calls       int
	lastPayload []byte
}

func (m *MockClient) Predict(ctx context.Context, payload []byte) (domain.BigFivePrediction, error) {
	m.mu.Lock()
	m.calls++
	m.lastPayload = append([]byte(nil), payload...)
	m.mu.Unlock()
	return m.Response, m.Err
}

// Calls devuelve cuantas veces se invoco Predict.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPayload devuelve una copia del ultimo payload recibido.
func (m *MockClient) LastPayload() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.lastPayload...)
}
