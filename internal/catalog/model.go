package catalog

import "time"

// Service is a bookable adventure listing. Prices are integer CLP.
type Service struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        Category   `json:"category"`
	Difficulty      Difficulty `json:"difficulty"`
	Duration        Duration   `json:"duration"`
	PriceBase       int64      `json:"price_base"`
	MinParticipants int        `json:"min_participants"`
	MaxParticipants int        `json:"max_participants"`
	Rating          *float64   `json:"rating"`
	ReviewCount     int        `json:"review_count"`
	ViewCount       int        `json:"view_count"`
	Status          string     `json:"status"`
	Verified        bool       `json:"verified"`
	Featured        bool       `json:"featured"`
	CoverImage      *string    `json:"cover_image,omitempty"`
	Region          Region     `json:"region"`
	Comuna          Comuna     `json:"comuna"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Region is the top level of the geographic hierarchy.
type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Comuna is a municipal subdivision belonging to exactly one Region.
type Comuna struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ServiceAddOn is an optional priced extra scoped to one service.
type ServiceAddOn struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Type      string `json:"type"`
}

type ServiceImage struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Alt   string `json:"alt,omitempty"`
	Order int    `json:"order"`
}

type ServiceFAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

// ServiceDetail is the full detail-page payload.
type ServiceDetail struct {
	Service
	AddOns []ServiceAddOn `json:"add_ons"`
	Images []ServiceImage `json:"images"`
	FAQs   []ServiceFAQ   `json:"faqs"`
}
