// Package normalizing implementa la limpieza y el enriquecimiento de las
// filas crudas del histórico de ventas: agrupación de estilistas, detección
// de productos y resolución de fechas faltantes.
package normalizing

import (
	"strings"

	"github.com/blushsalon/retention-api/internal/config"
)

// StaffGrouper normaliza el nombre crudo de un empleado a uno de los grupos
// canónicos del salón. Es una función total: cualquier string cae en
// exactamente un grupo, sin distinguir mayúsculas ni espacios sobrantes.
type StaffGrouper struct {
	principalNames []string
	principalGroup string
	teamNames      []string // nombres canónicos del equipo diario
	teamNamesUpper []string
	adminNames     []string
	adminGroup     string
	fallbackGroup  string
}

func NewStaffGrouper(cfg config.Salon) *StaffGrouper {
	return &StaffGrouper{
		principalNames: upperAll(cfg.PrincipalNames),
		principalGroup: cfg.PrincipalGroup,
		teamNames:      trimAll(cfg.TeamNames),
		teamNamesUpper: upperAll(cfg.TeamNames),
		adminNames:     upperAll(cfg.AdminNames),
		adminGroup:     cfg.AdminGroup,
		fallbackGroup:  cfg.FallbackGroup,
	}
}

// Group clasifica en este orden: variantes del estilista principal por
// substring, equipo diario por igualdad exacta, administración por substring
// y, si nada coincide, el grupo comodín.
func (g *StaffGrouper) Group(rawName string) string {
	name := strings.ToUpper(strings.TrimSpace(rawName))

	for _, principal := range g.principalNames {
		if strings.Contains(name, principal) {
			return g.principalGroup
		}
	}

	// Los miembros del equipo diario conservan su propio nombre como grupo
	for i, member := range g.teamNamesUpper {
		if name == member {
			return g.teamNames[i]
		}
	}

	for _, admin := range g.adminNames {
		if strings.Contains(name, admin) {
			return g.adminGroup
		}
	}

	return g.fallbackGroup
}

func trimAll(names []string) []string {
	result := make([]string, len(names))
	for i, n := range names {
		result[i] = strings.TrimSpace(n)
	}
	return result
}

func upperAll(names []string) []string {
	result := make([]string, len(names))
	for i, n := range names {
		result[i] = strings.ToUpper(strings.TrimSpace(n))
	}
	return result
}
