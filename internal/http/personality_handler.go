package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bigfive-relay/internal/service"
)

const predictionErrorMessage = "Erreur lors de la prédiction"

// predictionError es el cuerpo de las respuestas 500, con error antes que details.
type predictionError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// PersonalityHandler expone el relay de prediccion Big Five.
type PersonalityHandler struct {
	logger      *zap.Logger
	personality *service.PersonalityService
}

// NewPersonalityHandler crea una instancia de PersonalityHandler con dependencias necesarias.
func NewPersonalityHandler(logger *zap.Logger, personality *service.PersonalityService) *PersonalityHandler {
	return &PersonalityHandler{
		logger:      logger,
		personality: personality,
	}
}

// Predict maneja POST /personality. Solo se comprueba la sintaxis JSON; el contenido
// se reenvia sin decodificar.
func (h *PersonalityHandler) Predict(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("read personality payload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, predictionError{Error: predictionErrorMessage, Details: err.Error()})
		return
	}

	payload, err := relayPayload(c.ContentType(), body)
	if err != nil {
		h.logger.Warn("invalid personality payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	prediction, err := h.personality.Predict(c.Request.Context(), payload)
	if err != nil {
		h.logger.Error("personality prediction failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		c.JSON(http.StatusInternalServerError, predictionError{Error: predictionErrorMessage, Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, prediction)
}

var (
	errPayloadNotObject = errors.New("body must be a JSON object or array")
	errPayloadSyntax    = errors.New("body is not valid JSON")
)

// relayPayload aplica el parseo JSON estricto: sin Content-Type JSON o sin cuerpo se
// reenvia {}; si no, el cuerpo debe ser un objeto o array valido y se reenvia tal cual.
func relayPayload(contentType string, body []byte) ([]byte, error) {
	if contentType != gin.MIMEJSON || len(body) == 0 {
		return []byte("{}"), nil
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, errPayloadNotObject
	}
	if !json.Valid(body) {
		return nil, errPayloadSyntax
	}
	return body, nil
}
