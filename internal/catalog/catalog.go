// Package catalog provides the fixed WikiProject and banner-code lists
// used for filter validation and autocomplete. Catalogs are read-only for
// the process lifetime; a deployment may replace the defaults from a YAML
// file at startup.
package catalog

import "strings"

// BannerSuggestLimit caps the autocomplete response.
const BannerSuggestLimit = 30

type Project struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

type Catalog struct {
	projects []Project
	labels   map[string]string
	banners  []string
}

var defaultProjects = []Project{
	{Code: "CIV", Label: "Côte d’Ivoire"},
	{Code: "AFR", Label: "Afrique"},
	{Code: "POL", Label: "Politique"},
	{Code: "TECH", Label: "Technologie"},
	{Code: "BIO", Label: "Biographies"},
	{Code: "HIST", Label: "Histoire"},
	{Code: "GEO", Label: "Géographie"},
	{Code: "CULT", Label: "Culture"},
	{Code: "SPORT", Label: "Sport"},
	{Code: "ECO", Label: "Économie"},
	{Code: "EDU", Label: "Éducation"},
	{Code: "SANTE", Label: "Santé"},
	{Code: "SCI", Label: "Sciences"},
	{Code: "ENV", Label: "Environnement"},
	{Code: "ENTR", Label: "Entreprises"},
}

var defaultBanners = []string{
	"wikifier", "sources", "sources manquantes", "ébauche", "neutralité", "admissibilité",
	"à sourcer", "mise en forme", "actualisation", "style", "relecture", "orphan", "à illustrer",
	"à recycler", "travail inédit", "copyvio", "pertinence", "ton", "désorganisation",
}

// Default returns the built-in frwiki catalog.
func Default() *Catalog {
	return New(defaultProjects, defaultBanners)
}

func New(projects []Project, banners []string) *Catalog {
	labels := make(map[string]string, len(projects))
	for _, p := range projects {
		labels[p.Code] = p.Label
	}
	return &Catalog{
		projects: projects,
		labels:   labels,
		banners:  banners,
	}
}

// Projects returns the ordered project list.
func (c *Catalog) Projects() []Project {
	return c.projects
}

// HasProject reports whether code is a known project code.
func (c *Catalog) HasProject(code string) bool {
	_, ok := c.labels[code]
	return ok
}

// ProjectLabel resolves a project code to its display label.
func (c *Catalog) ProjectLabel(code string) (string, bool) {
	label, ok := c.labels[code]
	return label, ok
}

// Banners returns banner codes matching q as a case-insensitive substring,
// capped at BannerSuggestLimit. An empty q returns the full (capped) list.
func (c *Catalog) Banners(q string) []string {
	q = strings.ToLower(strings.TrimSpace(q))

	items := make([]string, 0, BannerSuggestLimit)
	for _, b := range c.banners {
		if q != "" && !strings.Contains(strings.ToLower(b), q) {
			continue
		}
		items = append(items, b)
		if len(items) == BannerSuggestLimit {
			break
		}
	}
	return items
}
