package domain

import "encoding/json"

// Claves Big Five tal como las expone el servicio de prediccion.
const (
	TraitExtraversion          = "extraversion"
	TraitStabiliteEmotionnelle = "stabilite_emotionnelle"
	TraitAgreabilite           = "agreabilite"
	TraitConscience            = "conscience"
	TraitOuverture             = "ouverture"
)

// BigFivePrediction es el registro devuelto por POST /personality.
// Los valores se copian tal cual del upstream; un campo ausente se serializa como null.
// El orden de los campos fija el orden de las claves en la respuesta.
type BigFivePrediction struct {
	Extraversion          json.RawMessage `json:"extraversion"`
	StabiliteEmotionnelle json.RawMessage `json:"stabilite_emotionnelle"`
	Agreabilite           json.RawMessage `json:"agreabilite"`
	Conscience            json.RawMessage `json:"conscience"`
	Ouverture             json.RawMessage `json:"ouverture"`
}

// NewBigFivePrediction toma las cinco claves exactas de un objeto del upstream.
// Cualquier otra clave, incluidas variantes en mayusculas, se ignora.
func NewBigFivePrediction(fields map[string]json.RawMessage) BigFivePrediction {
	return BigFivePrediction{
		Extraversion:          fields[TraitExtraversion],
		StabiliteEmotionnelle: fields[TraitStabiliteEmotionnelle],
		Agreabilite:           fields[TraitAgreabilite],
		Conscience:            fields[TraitConscience],
		Ouverture:             fields[TraitOuverture],
	}
}

// Missing devuelve las claves que el upstream no envio (o envio como null).
func (p BigFivePrediction) Missing() []string {
	var missing []string
	fields := []struct {
		name  string
		value json.RawMessage
	}{
		{TraitExtraversion, p.Extraversion},
		{TraitStabiliteEmotionnelle, p.StabiliteEmotionnelle},
		{TraitAgreabilite, p.Agreabilite},
		{TraitConscience, p.Conscience},
		{TraitOuverture, p.Ouverture},
	}
	for _, f := range fields {
		if len(f.value) == 0 || string(f.value) == "null" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Complete indica si las cinco dimensiones vinieron informadas.
func (p BigFivePrediction) Complete() bool {
	return len(p.Missing()) == 0
}
