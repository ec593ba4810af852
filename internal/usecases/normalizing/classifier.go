package normalizing

import (
	"strings"

	"github.com/blushsalon/retention-api/internal/config"
)

// ProductClassifier decide si un item vendido es producto o servicio.
// Cuando la fila trae la columna CLASE, manda la igualdad exacta con el
// marcador; si no, se busca cualquiera de las palabras clave en el nombre
// del item (marcas, presentaciones, líneas de producto).
type ProductClassifier struct {
	classMarker string
	keywords    []string
}

func NewProductClassifier(cfg config.Salon) *ProductClassifier {
	return &ProductClassifier{
		classMarker: strings.ToUpper(strings.TrimSpace(cfg.ProductClassMarker)),
		keywords:    upperAll(cfg.ProductKeywords),
	}
}

// IsProduct clasifica el item. Un item sin nombre y sin clase es servicio.
func (c *ProductClassifier) IsProduct(itemName, itemClass string) bool {
	if class := strings.ToUpper(strings.TrimSpace(itemClass)); class != "" {
		return class == c.classMarker
	}

	if itemName == "" {
		return false
	}

	nameUpper := strings.ToUpper(itemName)
	for _, keyword := range c.keywords {
		if strings.Contains(nameUpper, keyword) {
			return true
		}
	}

	return false
}
