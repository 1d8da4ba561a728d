package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gawa-wiki/gawa/internal/search"
)

type ResultsRouter struct {
	e      *echo.Echo
	engine *search.Engine
}

func NewResultsRouter(e *echo.Echo, engine *search.Engine) *ResultsRouter {
	return &ResultsRouter{
		e:      e,
		engine: engine,
	}
}

func (r *ResultsRouter) Bind() {
	r.e.GET("/api/results/search", r.searchHandler)
}

func (r *ResultsRouter) searchHandler(c echo.Context) error {
	params := search.Params{
		Text:    c.QueryParam("q"),
		Project: c.QueryParam("project"),
		Banner:  c.QueryParam("banner"),
		Status:  c.QueryParam("status"),
		Sort:    c.QueryParam("sort"),
		Page:    intParam(c, "page", 1),
		Size:    intParam(c, "size", 20),
	}

	result, err := r.engine.Search(c.Request().Context(), requestWindow(c), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// intParam falls back to def on missing or unparsable values; range
// clamping belongs to the engine.
func intParam(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
