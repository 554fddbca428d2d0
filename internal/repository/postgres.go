package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"propertychat/internal/model"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// propertyColumns leaves out the embedding, which is NULL until it is computed
var propertyColumns = []interface{}{
	"id", "listing_id", "address", "city", "province", "postal_code", "price",
	"bedrooms", "bathrooms", "square_feet", "neighborhood", "description",
	"features", "images", "latitude", "longitude", "rating", "days_on_market",
	"status", "year_built", "property_type", "created_at", "updated_at",
}

// PostgresRepository handles database operations
type PostgresRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db, dialect: goqu.Dialect("postgres")}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the tables when they do not exist yet
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts the mock listings into an empty properties table
func (r *PostgresRepository) SeedIfEmpty(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM properties"); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeded := 0
	for _, p := range SeedProperties() {
		p := p
		if _, err := r.CreateProperty(ctx, &p); err != nil {
			return seeded, err
		}
		seeded++
	}
	log.Info().Int("count", seeded).Msg("seeded mock properties")
	return seeded, nil
}

// GetAllProperties returns every property ordered by ID
func (r *PostgresRepository) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	return r.selectProperties(ctx, nil, 0)
}

// GetProperty returns a property by ID or ErrNotFound
func (r *PostgresRepository) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	query, args, err := r.dialect.From("properties").Prepared(true).
		Select(propertyColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build property query: %w", err)
	}

	var p model.Property
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

// SearchProperties performs a case-insensitive substring search
func (r *PostgresRepository) SearchProperties(ctx context.Context, query, location string, limit int) ([]model.Property, error) {
	return r.selectProperties(ctx, searchConditions(query, location), limit)
}

func searchConditions(query, location string) []exp.Expression {
	var conds []exp.Expression

	if query != "" {
		pattern := "%" + query + "%"
		conds = append(conds, goqu.Or(
			goqu.C("description").ILike(pattern),
			goqu.L("features::text").ILike(pattern),
			goqu.C("neighborhood").ILike(pattern),
			goqu.C("address").ILike(pattern),
			goqu.C("property_type").ILike(pattern),
			goqu.C("status").ILike(pattern),
		))
	}

	if loc := Locality(location); loc != "" {
		pattern := "%" + loc + "%"
		conds = append(conds, goqu.Or(
			goqu.C("city").ILike(pattern),
			goqu.C("neighborhood").ILike(pattern),
		))
	}
	return conds
}

// GetPropertiesByLocation returns properties whose city contains the given city
func (r *PostgresRepository) GetPropertiesByLocation(ctx context.Context, city string, limit int) ([]model.Property, error) {
	conds := []exp.Expression{goqu.C("city").ILike("%" + Locality(city) + "%")}
	return r.selectProperties(ctx, conds, limit)
}

func (r *PostgresRepository) propertyQuery(conds []exp.Expression, limit int) (string, []interface{}, error) {
	ds := r.dialect.From("properties").Prepared(true).
		Select(propertyColumns...).
		Order(goqu.I("id").Asc())
	if len(conds) > 0 {
		ds = ds.Where(conds...)
	}
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	return ds.ToSQL()
}

func (r *PostgresRepository) selectProperties(ctx context.Context, conds []exp.Expression, limit int) ([]model.Property, error) {
	query, args, err := r.propertyQuery(conds, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build property query: %w", err)
	}

	properties := []model.Property{}
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

// CreateProperty inserts a property, updating the row in place when the listing ID is already known
func (r *PostgresRepository) CreateProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	record := goqu.Record{
		"listing_id":     p.ListingID,
		"address":        p.Address,
		"city":           p.City,
		"province":       p.Province,
		"postal_code":    p.PostalCode,
		"price":          p.Price,
		"bedrooms":       p.Bedrooms,
		"bathrooms":      p.Bathrooms,
		"square_feet":    p.SquareFeet,
		"neighborhood":   p.Neighborhood,
		"description":    p.Description,
		"features":       p.Features,
		"images":         p.Images,
		"latitude":       p.Latitude,
		"longitude":      p.Longitude,
		"rating":         p.Rating,
		"days_on_market": p.DaysOnMarket,
		"status":         p.Status,
		"year_built":     p.YearBuilt,
		"property_type":  p.PropertyType,
	}

	update := goqu.Record{"updated_at": goqu.L("NOW()")}
	for col := range record {
		if col == "listing_id" {
			continue
		}
		update[col] = goqu.I("excluded." + col)
	}

	query, args, err := r.dialect.Insert("properties").Prepared(true).
		Rows(record).
		OnConflict(goqu.DoUpdate("listing_id", update)).
		Returning(propertyColumns...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build property insert: %w", err)
	}

	var created model.Property
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return &created, nil
}

// UpdateEmbedding updates the embedding vector for a property
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, propertyID int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`, vec, propertyID)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple properties in one transaction
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errs []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errs
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errs
	}
	defer stmt.Close()

	for _, item := range items {
		res, err := stmt.ExecContext(ctx, pgvector.NewVector(item.Embedding), item.PropertyID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("property %d: %v", item.PropertyID, err))
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			errs = append(errs, fmt.Sprintf("property %d: %v", item.PropertyID, ErrNotFound))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errs
	}

	return success, errs
}

// GetChatMessages returns a session's messages oldest first
func (r *PostgresRepository) GetChatMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	query, args, err := r.dialect.From("chat_messages").Prepared(true).
		Select("id", "session_id", "message", "is_user", "timestamp").
		Where(goqu.C("session_id").Eq(sessionID)).
		Order(goqu.I("timestamp").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build chat query: %w", err)
	}

	messages := []model.ChatMessage{}
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch chat messages: %w", err)
	}
	return messages, nil
}

// AddChatMessage persists a chat turn
func (r *PostgresRepository) AddChatMessage(ctx context.Context, sessionID, message string, isUser bool) (*model.ChatMessage, error) {
	query, args, err := r.dialect.Insert("chat_messages").Prepared(true).
		Rows(goqu.Record{
			"session_id": sessionID,
			"message":    message,
			"is_user":    isUser,
		}).
		Returning("id", "session_id", "message", "is_user", "timestamp").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build chat insert: %w", err)
	}

	var msg model.ChatMessage
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&msg); err != nil {
		return nil, fmt.Errorf("failed to add chat message: %w", err)
	}
	return &msg, nil
}

// RecordSearchQuery logs an executed search
func (r *PostgresRepository) RecordSearchQuery(ctx context.Context, q *model.SearchQuery) error {
	query, args, err := r.dialect.Insert("search_queries").Prepared(true).
		Rows(goqu.Record{
			"id":            q.ID,
			"session_id":    q.SessionID,
			"query":         q.Query,
			"location":      q.Location,
			"results_count": q.ResultsCount,
			"searched_at":   q.SearchedAt,
		}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build search query insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record search query: %w", err)
	}
	return nil
}

// RecordPropertyView logs a property detail view
func (r *PostgresRepository) RecordPropertyView(ctx context.Context, v *model.PropertyView) error {
	query, args, err := r.dialect.Insert("property_views").Prepared(true).
		Rows(goqu.Record{
			"property_id": v.PropertyID,
			"session_id":  v.SessionID,
			"viewed_at":   v.ViewedAt,
		}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build property view insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record property view: %w", err)
	}
	return nil
}
