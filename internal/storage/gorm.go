package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is one stored collection row
type Document struct {
	Name      string         `gorm:"type:varchar(100);primaryKey" json:"name"`
	Data      datatypes.JSON `json:"data"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Document
func (Document) TableName() string {
	return "documents"
}

// GormBackend stores collection documents as rows of the documents table.
// It works with any gorm dialector; sqlite and postgres are wired in config.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend migrates the documents table and returns the backend
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GormBackend{db: db}, nil
}

// Load fetches the document row
func (b *GormBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var doc Document
	err := b.db.WithContext(ctx).Where("name = ?", name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s: %w", name, err)
	}
	return []byte(doc.Data), nil
}

// Save upserts the document row
func (b *GormBackend) Save(ctx context.Context, name string, data []byte) error {
	doc := Document{
		Name:      name,
		Data:      datatypes.JSON(data),
		UpdatedAt: time.Now().UTC(),
	}

	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", name, err)
	}
	return nil
}
