package dashboard

import (
	"context"
	"fmt"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps the board in the statuses table
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore connects to Postgres and migrates the statuses table
func OpenGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore migrates the schema on an existing connection
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.StatusRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate statuses: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load returns every row, seeding the default board when the table is empty
func (s *GormStore) Load(ctx context.Context) (Board, error) {
	var rows []models.StatusRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}

	if len(rows) == 0 {
		board := DefaultBoard()
		for user, status := range board {
			if err := s.upsert(ctx, user, status); err != nil {
				return nil, err
			}
		}
		return board, nil
	}
	return boardFromRows(rows), nil
}

// Update upserts one person's row and returns the full board
func (s *GormStore) Update(ctx context.Context, update StatusUpdate) (Board, error) {
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	if err := s.upsert(ctx, update.User, update.status()); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

func (s *GormStore) upsert(ctx context.Context, user string, status Status) error {
	if err := s.save(ctx, user, status).Error; err != nil {
		return fmt.Errorf("failed to save status for %s: %w", user, err)
	}
	return nil
}

// save inserts the row or overwrites the existing one for the same person.
// Every column is written as given, zero rating included.
func (s *GormStore) save(ctx context.Context, user string, status Status) *gorm.DB {
	row := models.StatusRow{
		User:        user,
		Mood:        status.Mood,
		Rating:      status.Rating,
		LastUpdated: status.LastUpdated,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "person"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "rating", "last_updated", "updated_at"}),
	}).Create(&row)
}

func boardFromRows(rows []models.StatusRow) Board {
	board := make(Board, len(rows))
	for _, row := range rows {
		board[row.User] = Status{
			Mood:        row.Mood,
			Rating:      row.Rating,
			LastUpdated: row.LastUpdated,
		}
	}
	return board
}
