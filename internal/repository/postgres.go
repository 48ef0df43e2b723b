package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lexirealty/homestead/internal/models"
)

// ListListings retrieves every property listing, newest first. Records
// without coordinates come back with a nil GeoPoint.
func (r *Repository) ListListings(ctx context.Context) ([]models.Listing, error) {
	query := `
		SELECT id, title, description, address, city, state, property_type,
			price, bedrooms, bathrooms, sqft, images, latitude, longitude
		FROM listings
		ORDER BY created_at DESC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		listing, errScan := scanListing(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", errScan)
		}
		listings = append(listings, listing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return listings, nil
}

// GetListing retrieves a single listing by its identifier.
// A miss is reported as ErrNotFound.
func (r *Repository) GetListing(ctx context.Context, id string) (models.Listing, error) {
	query := `
		SELECT id, title, description, address, city, state, property_type,
			price, bedrooms, bathrooms, sqft, images, latitude, longitude
		FROM listings
		WHERE id = $1;
	`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Listing{}, ErrNotFound
		}
		return models.Listing{}, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

// AddListing stores a new listing and returns its assigned identifier.
func (r *Repository) AddListing(ctx context.Context, listing models.Listing) (string, error) {
	query := `
		INSERT INTO listings (
			id, title, description, address, city, state, property_type,
			price, bedrooms, bathrooms, sqft, images, latitude, longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	id := uuid.NewString()
	var lat, lng *float64
	if listing.Coordinates != nil {
		lat, lng = &listing.Coordinates.Latitude, &listing.Coordinates.Longitude
	}

	_, err := r.db.Exec(ctx, query,
		id, listing.Title, listing.Description, listing.Address, listing.City,
		listing.State, listing.PropertyType, listing.Price, listing.Bedrooms,
		listing.Bathrooms, listing.Sqft, listing.Images, lat, lng,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}

	r.log.DebugContext(ctx, "Stored new listing", "id", id, "title", listing.Title)

	return id, nil
}

// UpdateListingCoordinates persists geocoded coordinates for a listing so
// it is not re-geocoded on every view. It returns an error if the update fails.
func (r *Repository) UpdateListingCoordinates(ctx context.Context, listingID string, point models.GeoPoint) error {
	query := `
		UPDATE listings
		SET
			latitude = $1,
			longitude = $2
		WHERE
			id = $3;
	`

	_, err := r.db.Exec(ctx, query, point.Latitude, point.Longitude, listingID)
	if err != nil {
		return fmt.Errorf("failed to update listing coordinates: %w", err)
	}

	return nil
}

// ListArticles retrieves every article, newest first.
func (r *Repository) ListArticles(ctx context.Context) ([]models.Article, error) {
	query := `
		SELECT id, title, description, tag, content, image, date
		FROM articles
		ORDER BY created_at DESC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var article models.Article
		if errScan := rows.Scan(
			&article.ID, &article.Title, &article.Description,
			&article.Tag, &article.Content, &article.Image, &article.Date,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan article: %w", errScan)
		}
		articles = append(articles, article)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return articles, nil
}

// GetArticle retrieves a single article by its identifier.
// A miss is reported as ErrNotFound.
func (r *Repository) GetArticle(ctx context.Context, id string) (models.Article, error) {
	query := `
		SELECT id, title, description, tag, content, image, date
		FROM articles
		WHERE id = $1;
	`

	var article models.Article
	err := r.db.QueryRow(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Description,
		&article.Tag, &article.Content, &article.Image, &article.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

// AddArticle stores a new article and returns its assigned identifier.
func (r *Repository) AddArticle(ctx context.Context, article models.Article) (string, error) {
	query := `
		INSERT INTO articles (id, title, description, tag, content, image, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	id := uuid.NewString()
	_, err := r.db.Exec(ctx, query,
		id, article.Title, article.Description, article.Tag,
		article.Content, article.Image, article.Date,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert article: %w", err)
	}

	r.log.DebugContext(ctx, "Stored new article", "id", id, "title", article.Title)

	return id, nil
}

// scanListing reads one listing row, folding nullable latitude/longitude
// into an optional GeoPoint.
func scanListing(row pgx.Row) (models.Listing, error) {
	var listing models.Listing
	var lat, lng *float64

	err := row.Scan(
		&listing.ID, &listing.Title, &listing.Description, &listing.Address,
		&listing.City, &listing.State, &listing.PropertyType, &listing.Price,
		&listing.Bedrooms, &listing.Bathrooms, &listing.Sqft, &listing.Images,
		&lat, &lng,
	)
	if err != nil {
		return models.Listing{}, err
	}

	if lat != nil && lng != nil {
		listing.Coordinates = &models.GeoPoint{Latitude: *lat, Longitude: *lng}
	}

	return listing, nil
}
