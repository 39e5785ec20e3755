package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and ensures the catalog schema exists.
func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
	}

	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureExtensions()
	ensureGeoTables()
	ensureCatalogTables()
	ensureUsersTable()
	ensureBookingTables()
}

// ensureExtensions installs unaccent, used by the spanish full-text search.
func ensureExtensions() {
	if _, err := Conn.Exec(context.Background(), `CREATE EXTENSION IF NOT EXISTS unaccent`); err != nil {
		log.Printf("failed to ensure unaccent extension: %v", err)
	}
}

// ensureGeoTables creates regions and comunas if missing.
func ensureGeoTables() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS regions (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL,
            slug TEXT NOT NULL UNIQUE,
            sort_order INTEGER NOT NULL DEFAULT 0
        );
        CREATE TABLE IF NOT EXISTS comunas (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            region_id UUID NOT NULL REFERENCES regions(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            slug TEXT NOT NULL UNIQUE
        );
        CREATE INDEX IF NOT EXISTS idx_comunas_region ON comunas(region_id);
    `)
	if err != nil {
		log.Printf("failed to ensure geo tables: %v", err)
	}
}

// ensureCatalogTables creates services and their child tables if missing.
// Enums are stored as text with CHECK constraints matching the closed
// vocabularies validated at the API boundary.
func ensureCatalogTables() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS services (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            slug TEXT NOT NULL UNIQUE,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL CHECK (category IN (
                'KAYAK','RAFTING','TREKKING','PESCA','MONTANISMO','CICLISMO','ESCALADA','OTROS')),
            difficulty TEXT NOT NULL CHECK (difficulty IN (
                'PRINCIPIANTE','BASICO','INTERMEDIO','AVANZADO','EXPERTO')),
            duration TEXT NOT NULL CHECK (duration IN (
                'MEDIO_DIA','DIA_COMPLETO','MULTI_DIA')),
            price_base BIGINT NOT NULL CHECK (price_base >= 0),
            min_participants INTEGER NOT NULL DEFAULT 1,
            max_participants INTEGER NOT NULL DEFAULT 1,
            rating NUMERIC(2,1) NULL,
            review_count INTEGER NOT NULL DEFAULT 0,
            view_count INTEGER NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'PENDING',
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            featured BOOLEAN NOT NULL DEFAULT FALSE,
            cover_image TEXT NULL,
            region_id UUID NOT NULL REFERENCES regions(id),
            comuna_id UUID NOT NULL REFERENCES comunas(id),
            guide_id UUID NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_services_visible ON services(status, verified);
        CREATE INDEX IF NOT EXISTS idx_services_region ON services(region_id);
        CREATE INDEX IF NOT EXISTS idx_services_category ON services(category);

        CREATE TABLE IF NOT EXISTS service_add_ons (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            price BIGINT NOT NULL CHECK (price >= 0),
            type TEXT NOT NULL DEFAULT 'OTHER',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_add_ons_service ON service_add_ons(service_id);

        CREATE TABLE IF NOT EXISTS service_images (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
            url TEXT NOT NULL,
            alt TEXT NOT NULL DEFAULT '',
            sort_order INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_images_service ON service_images(service_id);

        CREATE TABLE IF NOT EXISTS service_faqs (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
            question TEXT NOT NULL,
            answer TEXT NOT NULL,
            sort_order INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_faqs_service ON service_faqs(service_id);
    `)
	if err != nil {
		log.Printf("failed to ensure catalog tables: %v", err)
	}
}

// ensureUsersTable creates a minimal users table for guest checkout.
// Credentials live with the external identity provider, not here.
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'USER',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Printf("failed to ensure users table: %v", err)
	}
}

// ensureBookingTables creates bookings and their add-on join table.
func ensureBookingTables() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS bookings (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            booking_number TEXT NOT NULL UNIQUE,
            user_id UUID NOT NULL REFERENCES users(id),
            service_id UUID NOT NULL REFERENCES services(id),
            guide_id UUID NULL,
            service_date DATE NOT NULL,
            participants INTEGER NOT NULL CHECK (participants >= 1),
            total_amount BIGINT NOT NULL CHECK (total_amount >= 0),
            status TEXT NOT NULL DEFAULT 'REQUESTED',
            payment_status TEXT NOT NULL DEFAULT 'PENDING',
            dietary_restrictions TEXT NOT NULL DEFAULT '',
            special_considerations TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_bookings_service ON bookings(service_id);

        CREATE TABLE IF NOT EXISTS booking_add_ons (
            booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
            add_on_id UUID NOT NULL REFERENCES service_add_ons(id),
            price BIGINT NOT NULL CHECK (price >= 0),
            PRIMARY KEY (booking_id, add_on_id)
        );
    `)
	if err != nil {
		log.Printf("failed to ensure booking tables: %v", err)
	}
}
