package problemhub

import (
	"strings"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// API response shapes.

type apiCatalogRef struct {
	Slug        string `json:"slug"`
	AccentColor string `json:"accentColor"`
}

type apiCatalog struct {
	Slug   string     `json:"slug"`
	Groups []apiGroup `json:"groups"`
}

type apiGroup struct {
	Label    apiText      `json:"label"`
	Problems []apiProblem `json:"problems"`
}

type apiProblem struct {
	ID         string  `json:"id"`
	Title      apiText `json:"title"`
	Slug       string  `json:"slug"`
	Difficulty string  `json:"difficulty"`
}

type apiText struct {
	En string `json:"en"`
	Zh string `json:"zh"`
}

// mapCatalog converts the API response to domain groups. Problems with
// no usable ID are dropped; an unknown difficulty defaults to MEDIUM
// rather than failing the whole catalog.
func mapCatalog(resp apiCatalog) []domain.CatalogGroup {
	out := make([]domain.CatalogGroup, 0, len(resp.Groups))
	for _, g := range resp.Groups {
		group := domain.CatalogGroup{
			Label: domain.BilingualText{En: g.Label.En, Zh: g.Label.Zh},
		}
		for _, p := range g.Problems {
			if strings.TrimSpace(p.ID) == "" {
				continue
			}
			group.Problems = append(group.Problems, domain.CatalogProblem{
				ID:         p.ID,
				Title:      domain.BilingualText{En: p.Title.En, Zh: p.Title.Zh},
				Slug:       p.Slug,
				Difficulty: mapDifficulty(p.Difficulty),
			})
		}
		out = append(out, group)
	}
	return out
}

func mapDifficulty(s string) domain.Difficulty {
	d := domain.Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsValid() {
		return domain.DifficultyMedium
	}
	return d
}
