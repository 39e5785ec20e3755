package search

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/axelignis/adventure/internal/apperr"
	"github.com/axelignis/adventure/internal/catalog"
	"github.com/axelignis/adventure/internal/db"
)

// Search handles GET /search. Filter dimensions accept repeated query
// params, e.g. ?category=KAYAK&category=RAFTING&region=<uuid>&page=2.
func Search(c echo.Context) error {
	params, err := parseParams(c)
	if err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}

	result, err := Run(c.Request().Context(), db.Conn, params)
	if err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}

	return c.JSON(http.StatusOK, result)
}

// parseParams builds Params from the query string. Unknown enum values are
// rejected here, before any SQL is built, so the fetch and count paths can
// never disagree about them.
func parseParams(c echo.Context) (Params, error) {
	var p Params
	p.Query = c.QueryParam("q")

	qs := c.QueryParams()
	for _, v := range qs["category"] {
		cat := catalog.Category(v)
		if !cat.Valid() {
			return p, apperr.Validationf("unknown category %q", v)
		}
		p.Filters.Categories = append(p.Filters.Categories, cat)
	}
	p.Filters.Regions = append(p.Filters.Regions, qs["region"]...)
	for _, v := range qs["difficulty"] {
		d := catalog.Difficulty(v)
		if !d.Valid() {
			return p, apperr.Validationf("unknown difficulty %q", v)
		}
		p.Filters.Difficulties = append(p.Filters.Difficulties, d)
	}
	for _, v := range qs["duration"] {
		d := catalog.Duration(v)
		if !d.Valid() {
			return p, apperr.Validationf("unknown duration %q", v)
		}
		p.Filters.Durations = append(p.Filters.Durations, d)
	}

	if v := c.QueryParam("price_min"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return p, apperr.Validationf("invalid price_min %q", v)
		}
		p.Filters.PriceMin = &n
	}
	if v := c.QueryParam("price_max"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return p, apperr.Validationf("invalid price_max %q", v)
		}
		p.Filters.PriceMax = &n
	}
	if v := c.QueryParam("rating_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			return p, apperr.Validationf("invalid rating_min %q", v)
		}
		p.Filters.MinRating = &f
	}

	// Malformed page/limit values are normalized, not rejected.
	p.Page, _ = strconv.Atoi(c.QueryParam("page"))
	p.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	p.Normalize()

	return p, nil
}
