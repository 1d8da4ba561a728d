package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gawa-wiki/gawa/internal/stats"
	"github.com/gawa-wiki/gawa/internal/window"
)

type StatsRouter struct {
	e      *echo.Echo
	engine *stats.Engine
}

func NewStatsRouter(e *echo.Echo, engine *stats.Engine) *StatsRouter {
	return &StatsRouter{
		e:      e,
		engine: engine,
	}
}

func (r *StatsRouter) Bind() {
	r.e.GET("/api/stats/overview", r.overviewHandler)
	r.e.GET("/api/stats/timeseries", r.timeseriesHandler)
	r.e.GET("/api/stats/top", r.topHandler)
	r.e.GET("/api/stats/quality", r.qualityHandler)
}

func (r *StatsRouter) overviewHandler(c echo.Context) error {
	w := requestWindow(c)

	overview, err := r.engine.Overview(c.Request().Context(), w)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

func (r *StatsRouter) timeseriesHandler(c echo.Context) error {
	raw := c.QueryParam("metric")
	if raw == "" {
		raw = string(stats.MetricQueries)
	}
	metric, err := stats.ParseMetric(raw)
	if err != nil {
		return err
	}

	w := requestWindow(c)

	series, err := r.engine.Timeseries(c.Request().Context(), w, metric)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, series)
}

func (r *StatsRouter) topHandler(c echo.Context) error {
	limit := stats.TopLimitDefault
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	w := requestWindow(c)

	top, err := r.engine.TopProjects(c.Request().Context(), w, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, top)
}

func (r *StatsRouter) qualityHandler(c echo.Context) error {
	w := requestWindow(c)

	quality, err := r.engine.Quality(c.Request().Context(), w)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quality)
}

func requestWindow(c echo.Context) window.Window {
	return window.Resolve(c.QueryParam("from"), c.QueryParam("to"), time.Now().UTC())
}
