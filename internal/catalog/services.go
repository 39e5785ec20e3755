package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/axelignis/adventure/internal/analytics"
	"github.com/axelignis/adventure/internal/apperr"
	"github.com/axelignis/adventure/internal/db"
)

const serviceColumns = `s.id, s.slug, s.title, s.description, s.category, s.difficulty, s.duration,
       s.price_base, s.min_participants, s.max_participants, s.rating, s.review_count,
       s.view_count, s.status, s.verified, s.featured, s.cover_image,
       r.id, r.name, r.slug, c.id, c.name, c.slug, s.created_at`

// GetServiceBySlug handles GET /services/:slug. Only approved services are
// visible. A successful view triggers a background view-count increment
// that never delays or fails the response.
func GetServiceBySlug(c echo.Context) error {
	slug := c.Param("slug")
	ctx := c.Request().Context()

	var detail ServiceDetail
	err := db.Conn.QueryRow(ctx, `
        SELECT `+serviceColumns+`
        FROM services s
        INNER JOIN regions r ON s.region_id = r.id
        INNER JOIN comunas c ON s.comuna_id = c.id
        WHERE s.slug = $1 AND s.status = 'APPROVED'`, slug,
	).Scan(
		&detail.ID, &detail.Slug, &detail.Title, &detail.Description,
		&detail.Category, &detail.Difficulty, &detail.Duration,
		&detail.PriceBase, &detail.MinParticipants, &detail.MaxParticipants,
		&detail.Rating, &detail.ReviewCount, &detail.ViewCount,
		&detail.Status, &detail.Verified, &detail.Featured, &detail.CoverImage,
		&detail.Region.ID, &detail.Region.Name, &detail.Region.Slug,
		&detail.Comuna.ID, &detail.Comuna.Name, &detail.Comuna.Slug,
		&detail.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
	}
	if err != nil {
		code, msg := apperr.Status(apperr.Retryable("fetch service", err))
		return c.JSON(code, echo.Map{"error": msg})
	}

	if detail.AddOns, err = loadAddOns(ctx, detail.ID); err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	if detail.Images, err = loadImages(ctx, detail.ID); err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	if detail.FAQs, err = loadFAQs(ctx, detail.ID); err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}

	analytics.CountView(detail.ID)

	return c.JSON(http.StatusOK, detail)
}

func loadAddOns(ctx context.Context, serviceID string) ([]ServiceAddOn, error) {
	rows, err := db.Conn.Query(ctx,
		`SELECT id, service_id, name, price, type
         FROM service_add_ons WHERE service_id = $1 ORDER BY created_at ASC`, serviceID)
	if err != nil {
		return nil, apperr.Retryable("fetch add-ons", err)
	}
	defer rows.Close()

	addOns := []ServiceAddOn{}
	for rows.Next() {
		var a ServiceAddOn
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.Name, &a.Price, &a.Type); err != nil {
			return nil, apperr.Retryable("scan add-on", err)
		}
		addOns = append(addOns, a)
	}
	return addOns, rows.Err()
}

func loadImages(ctx context.Context, serviceID string) ([]ServiceImage, error) {
	rows, err := db.Conn.Query(ctx,
		`SELECT id, url, alt, sort_order
         FROM service_images WHERE service_id = $1 ORDER BY sort_order ASC`, serviceID)
	if err != nil {
		return nil, apperr.Retryable("fetch images", err)
	}
	defer rows.Close()

	images := []ServiceImage{}
	for rows.Next() {
		var img ServiceImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Alt, &img.Order); err != nil {
			return nil, apperr.Retryable("scan image", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func loadFAQs(ctx context.Context, serviceID string) ([]ServiceFAQ, error) {
	rows, err := db.Conn.Query(ctx,
		`SELECT id, question, answer, sort_order
         FROM service_faqs WHERE service_id = $1 ORDER BY sort_order ASC`, serviceID)
	if err != nil {
		return nil, apperr.Retryable("fetch faqs", err)
	}
	defer rows.Close()

	faqs := []ServiceFAQ{}
	for rows.Next() {
		var f ServiceFAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Order); err != nil {
			return nil, apperr.Retryable("scan faq", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// GetRelatedServices handles GET /services/:slug/related. Related means same
// category or same region; when that falls short of the limit, any visible
// service backfills the list.
func GetRelatedServices(c echo.Context) error {
	slug := c.Param("slug")
	ctx := c.Request().Context()

	limit := 4
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 12 {
			limit = n
		}
	}

	var serviceID, category, regionID string
	err := db.Conn.QueryRow(ctx,
		`SELECT id, category, region_id FROM services WHERE slug = $1 AND status = 'APPROVED'`, slug,
	).Scan(&serviceID, &category, &regionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
	}
	if err != nil {
		code, msg := apperr.Status(apperr.Retryable("fetch service", err))
		return c.JSON(code, echo.Map{"error": msg})
	}

	rows, err := db.Conn.Query(ctx, `
        SELECT `+serviceColumns+`
        FROM services s
        INNER JOIN regions r ON s.region_id = r.id
        INNER JOIN comunas c ON s.comuna_id = c.id
        WHERE s.id <> $1 AND s.status = 'APPROVED' AND s.verified = TRUE
        ORDER BY (s.category = $2 OR s.region_id = $3) DESC,
                 s.featured DESC, s.rating DESC NULLS LAST, s.review_count DESC
        LIMIT $4`, serviceID, category, regionID, limit)
	if err != nil {
		code, msg := apperr.Status(apperr.Retryable("fetch related services", err))
		return c.JSON(code, echo.Map{"error": msg})
	}
	defer rows.Close()

	related := []Service{}
	for rows.Next() {
		var s Service
		if err := rows.Scan(
			&s.ID, &s.Slug, &s.Title, &s.Description, &s.Category, &s.Difficulty, &s.Duration,
			&s.PriceBase, &s.MinParticipants, &s.MaxParticipants, &s.Rating, &s.ReviewCount,
			&s.ViewCount, &s.Status, &s.Verified, &s.Featured, &s.CoverImage,
			&s.Region.ID, &s.Region.Name, &s.Region.Slug,
			&s.Comuna.ID, &s.Comuna.Name, &s.Comuna.Slug, &s.CreatedAt,
		); err != nil {
			code, msg := apperr.Status(apperr.Retryable("scan related service", err))
			return c.JSON(code, echo.Map{"error": msg})
		}
		related = append(related, s)
	}
	if err := rows.Err(); err != nil {
		code, msg := apperr.Status(apperr.Retryable("iterate related services", err))
		return c.JSON(code, echo.Map{"error": msg})
	}

	return c.JSON(http.StatusOK, echo.Map{"services": related})
}

// GetPriceRange handles GET /search/price-range.
func GetPriceRange(c echo.Context) error {
	var min, max *int64
	err := db.Conn.QueryRow(c.Request().Context(),
		`SELECT MIN(price_base), MAX(price_base) FROM services WHERE `+visibleServices,
	).Scan(&min, &max)
	if err != nil {
		code, msg := apperr.Status(apperr.Retryable("fetch price range", err))
		return c.JSON(code, echo.Map{"error": msg})
	}

	if min == nil || max == nil {
		return c.JSON(http.StatusOK, echo.Map{"min": 0, "max": 1000000})
	}
	return c.JSON(http.StatusOK, echo.Map{"min": *min, "max": *max})
}
