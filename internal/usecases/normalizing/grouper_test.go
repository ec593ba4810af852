package normalizing

import (
	"testing"

	"github.com/blushsalon/retention-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func testSalonConfig() config.Salon {
	return config.Salon{
		PrincipalNames: []string{"Julio Luna", "Julio", "Julio Cesar"},
		PrincipalGroup: "Julio Luna",
		TeamNames:      []string{"Jhon", "Yuri", "Susy"},
		AdminNames:     []string{"Vero", "Veronica"},
		AdminGroup:     "Vero",
		FallbackGroup:  "Otros",
		DisplayOrder:   []string{"Julio Luna", "Jhon", "Yuri", "Susy", "Vero", "Otros"},

		ProductClassMarker: "PRODUCTO",
		ProductKeywords: []string{
			"MASCARILLA", "SHAMPOO", "SHAMPO", "ACONDICIONADOR",
			"CREMA", "SERUM", "AMPOLLA", "SPRAY", "GEL",
			"LOTION", "REDKEN", "LOREAL", "TIGI", "KERASTASE",
			"X250ML", "X300ML", "X500ML", "ML", "GR",
			"BED HEAD", "ALL SOFT", "FRIZZ DISMISS",
		},
	}
}

func TestStaffGrouper_Group(t *testing.T) {
	grouper := NewStaffGrouper(testSalonConfig())

	tests := []struct {
		name     string
		rawName  string
		expected string
	}{
		{
			name:     "Variante del principal por substring",
			rawName:  "Julio Cesar",
			expected: "Julio Luna",
		},
		{
			name:     "Principal sin distinguir mayúsculas",
			rawName:  "JULIO LUNA",
			expected: "Julio Luna",
		},
		{
			name:     "Principal con texto adicional",
			rawName:  "Julio C. Luna Torres",
			expected: "Julio Luna",
		},
		{
			name:     "Miembro del equipo por igualdad exacta",
			rawName:  "Jhon",
			expected: "Jhon",
		},
		{
			name:     "Miembro del equipo con espacios sobrantes",
			rawName:  "  YURI  ",
			expected: "Yuri",
		},
		{
			name:     "Administración por substring",
			rawName:  "Veronica Perez",
			expected: "Vero",
		},
		{
			name:     "Nombre desconocido cae en el comodín",
			rawName:  "Carmen",
			expected: "Otros",
		},
		{
			name:     "Vacío cae en el comodín",
			rawName:  "",
			expected: "Otros",
		},
		{
			name:     "Equipo con apellido no es igualdad exacta",
			rawName:  "Susy Ramirez",
			expected: "Otros",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, grouper.Group(tt.rawName))
		})
	}
}
