package pricing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/axelignis/adventure/internal/apperr"
	"github.com/axelignis/adventure/internal/db"
)

// QuoteRequest is the checkout preview payload. The same computation is
// re-executed at booking time; this endpoint is display-only.
type QuoteRequest struct {
	ServiceID    string   `json:"service_id"`
	Participants int      `json:"participants"`
	AddOnIDs     []string `json:"add_on_ids"`
}

// Quote handles POST /pricing/quote.
func Quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	calc := NewCalculator(NewPgSource(db.Conn))
	breakdown, err := calc.Quote(c.Request().Context(), req.ServiceID, req.Participants, req.AddOnIDs)
	if err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}

	return c.JSON(http.StatusOK, breakdown)
}
