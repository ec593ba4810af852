// Package messaging genera los mensajes de contacto personalizados que el
// salón copia y pega en WhatsApp. Las plantillas son datos (liquid) y el
// generador solo conoce el mapeo de umbrales de ausencia a plantilla.
package messaging

import (
	"strings"

	"github.com/osteele/liquid"
	"github.com/pkg/errors"

	"github.com/blushsalon/retention-api/internal/config"
)

// Generator produce el texto de contacto para un cliente según sus días sin
// visita. Función pura: mismos argumentos, mismo mensaje.
type Generator interface {
	Generate(customerName, stylist string, daysSinceVisit int) (string, error)
}

// tier asocia un umbral de días (exclusivo) con su plantilla compilada.
// Se evalúan en orden descendente y gana el primer umbral superado.
type tier struct {
	minDays  int
	template *liquid.Template
}

type generator struct {
	engine       *liquid.Engine
	tiers        []tier
	thankYou     *liquid.Template
	fallbackName string
}

// NewGenerator compila las cuatro plantillas una sola vez. Una plantilla
// inválida es un error de configuración, no de corrida.
func NewGenerator(messages config.Messages, retention config.Retention) (Generator, error) {
	engine := liquid.NewEngine()

	parse := func(name, source string) (*liquid.Template, error) {
		tpl, err := engine.ParseString(source)
		if err != nil {
			return nil, errors.Wrapf(err, "plantilla %s inválida", name)
		}
		return tpl, nil
	}

	reactivation, err := parse("reactivacion", messages.Reactivation)
	if err != nil {
		return nil, err
	}
	nudge, err := parse("recordatorio_largo", messages.Nudge)
	if err != nil {
		return nil, err
	}
	reminder, err := parse("recordatorio_corto", messages.Reminder)
	if err != nil {
		return nil, err
	}
	thankYou, err := parse("agradecimiento", messages.ThankYou)
	if err != nil {
		return nil, err
	}

	return &generator{
		engine: engine,
		tiers: []tier{
			{minDays: retention.OccasionalMaxDays, template: reactivation},
			{minDays: retention.ActiveWindowDays, template: nudge},
			{minDays: retention.DefaultMinExportDays, template: reminder},
		},
		thankYou:     thankYou,
		fallbackName: messages.FallbackName,
	}, nil
}

// Generate interpola el primer nombre del cliente (o el saludo genérico si
// viene vacío), el estilista y el conteo de días en la plantilla del nivel.
func (g *generator) Generate(customerName, stylist string, daysSinceVisit int) (string, error) {
	template := g.thankYou
	for _, t := range g.tiers {
		if daysSinceVisit > t.minDays {
			template = t.template
			break
		}
	}

	bindings := map[string]interface{}{
		"nombre":    firstName(customerName, g.fallbackName),
		"estilista": stylist,
		"dias":      daysSinceVisit,
	}

	message, err := template.RenderString(bindings)
	if err != nil {
		return "", errors.Wrap(err, "error al renderizar el mensaje")
	}

	return message, nil
}

func firstName(fullName, fallback string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fallback
	}
	return fields[0]
}
