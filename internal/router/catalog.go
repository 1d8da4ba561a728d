package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gawa-wiki/gawa/internal/catalog"
)

type CatalogRouter struct {
	e   *echo.Echo
	cat *catalog.Catalog
}

func NewCatalogRouter(e *echo.Echo, cat *catalog.Catalog) *CatalogRouter {
	return &CatalogRouter{
		e:   e,
		cat: cat,
	}
}

func (r *CatalogRouter) Bind() {
	r.e.GET("/api/catalog/projects", r.projectsHandler)
	r.e.GET("/api/catalog/banners", r.bannersHandler)
}

func (r *CatalogRouter) projectsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"projects": r.cat.Projects(),
	})
}

func (r *CatalogRouter) bannersHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"items": r.cat.Banners(c.QueryParam("q")),
	})
}
