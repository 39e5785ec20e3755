package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/axelignis/adventure/internal/alerts"
	"github.com/axelignis/adventure/internal/apperr"
	"github.com/axelignis/adventure/internal/db"
	"github.com/axelignis/adventure/internal/pricing"
)

// Create handles POST /bookings. The authoritative total is recomputed here
// from current catalog prices; any client-side preview is ignored.
func Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	serviceDate, err := time.Parse("2006-01-02", req.ServiceDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service_date, expected YYYY-MM-DD"})
	}

	var guideID *string
	var minParticipants, maxParticipants int
	var title string
	err = db.Conn.QueryRow(ctx,
		`SELECT guide_id, min_participants, max_participants, title
         FROM services WHERE id = $1 AND status = 'APPROVED'`, req.ServiceID,
	).Scan(&guideID, &minParticipants, &maxParticipants, &title)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch service"})
	}

	if req.Participants < minParticipants || req.Participants > maxParticipants {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("participants must be between %d and %d", minParticipants, maxParticipants),
		})
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		userID, err = getOrCreateGuestUser(ctx, req.GuestEmail, req.GuestName, req.GuestPhone)
		if err != nil {
			code, msg := apperr.Status(err)
			return c.JSON(code, echo.Map{"error": msg})
		}
	}

	calc := pricing.NewCalculator(pricing.NewPgSource(db.Conn))
	breakdown, err := calc.Quote(ctx, req.ServiceID, req.Participants, req.AddOnIDs)
	if err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}

	bookingID := uuid.New().String()
	bookingNumber := newBookingNumber()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, booking_number, user_id, service_id, guide_id, service_date,
                               participants, total_amount, status, payment_status,
                               dietary_restrictions, special_considerations, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'REQUESTED', 'PENDING', $9, $10, $11)`,
		bookingID, bookingNumber, userID, req.ServiceID, guideID, serviceDate,
		req.Participants, breakdown.Total,
		req.DietaryRestrictions, req.SpecialConsiderations, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	for _, line := range breakdown.AddOns {
		if _, err := tx.Exec(ctx,
			`INSERT INTO booking_add_ons (booking_id, add_on_id, price) VALUES ($1, $2, $3)`,
			bookingID, line.ID, line.Price,
		); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to attach add-ons"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	// Best effort; booking creation already succeeded. Failures are logged
	// inside alerts.
	_ = alerts.EnqueueBookingRequested(bookingID, bookingNumber, userID, title, breakdown.Total)

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":     bookingID,
		"booking_number": bookingNumber,
		"total_amount":   breakdown.Total,
	})
}

// ListMine handles GET /bookings for the authenticated caller.
func ListMine(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(),
		`SELECT id, booking_number, user_id, service_id, service_date, participants,
                total_amount, status, payment_status, dietary_restrictions,
                special_considerations, created_at
         FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch bookings"})
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.UserID, &b.ServiceID, &b.ServiceDate,
			&b.Participants, &b.TotalAmount, &b.Status, &b.PaymentStatus,
			&b.DietaryRestrictions, &b.SpecialConsiderations, &b.CreatedAt,
		); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse booking record"})
		}
		bookings = append(bookings, b)
	}

	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// getOrCreateGuestUser finds a user by email or creates a guest account, so
// unauthenticated checkout still produces an owned booking.
func getOrCreateGuestUser(ctx context.Context, email, name, phone string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || name == "" {
		return "", apperr.Validationf("guest_email and guest_name are required for guest checkout")
	}

	var userID string
	err := db.Conn.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.Retryable("fetch user", err)
	}

	userID = uuid.New().String()
	if _, err := db.Conn.Exec(ctx,
		`INSERT INTO users (id, email, name, phone, role, created_at)
         VALUES ($1, $2, $3, $4, 'USER', $5)`,
		userID, email, name, phone, time.Now(),
	); err != nil {
		return "", apperr.Retryable("create guest user", err)
	}
	return userID, nil
}

// newBookingNumber generates a human-readable reference like ADV-20260830-1A2B3C.
func newBookingNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("ADV-%s-%s", time.Now().Format("20060102"), suffix)
}
