package service

import (
	"context"

	"go.uber.org/zap"

	"bigfive-relay/internal/domain"
	"bigfive-relay/internal/metrics"
	"bigfive-relay/internal/predictor"
)

// PersonalityService reenvia el payload al predictor y devuelve el registro Big Five.
type PersonalityService struct {
	predictor predictor.Predictor
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPersonalityService(p predictor.Predictor, m *metrics.Metrics, logger *zap.Logger) *PersonalityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonalityService{
		predictor: p,
		metrics:   m,
		logger:    logger,
	}
}

// Predict hace exactamente una llamada al upstream con el payload sin modificar.
// El error del predictor se devuelve tal cual: su mensaje termina en la respuesta 500.
func (s *PersonalityService) Predict(ctx context.Context, payload []byte) (domain.BigFivePrediction, error) {
	done := s.metrics.StartUpstream()

	prediction, err := s.predictor.Predict(ctx, payload)
	if err != nil {
		done(metrics.OutcomeError)
		s.logger.Warn("prediction failed", zap.Error(err), zap.Int("payload_bytes", len(payload)))
		return domain.BigFivePrediction{}, err
	}

	if missing := prediction.Missing(); len(missing) > 0 {
		done(metrics.OutcomeIncomplete)
		s.logger.Debug("upstream prediction incomplete", zap.Strings("missing", missing))
		return prediction, nil
	}

	done(metrics.OutcomeSuccess)
	return prediction, nil
}
