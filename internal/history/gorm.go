package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/domain"
)

// messageRecord is the persisted form of a chat message.
type messageRecord struct {
	ID        uint      `gorm:"primarykey"`
	Room      string    `gorm:"size:100;index;not null"`
	Username  string    `gorm:"size:50;not null"`
	Text      string    `gorm:"size:2000;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (messageRecord) TableName() string { return "messages" }

// GormStore is the durable Store, backed by sqlite.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm opens (or creates) the sqlite database at path and migrates
// the messages table.
func OpenGorm(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&messageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate messages: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Append(ctx context.Context, msg domain.Message) error {
	rec := messageRecord{
		Room:      msg.Room,
		Username:  msg.Username,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *GormStore) Recent(ctx context.Context, room string, limit int) ([]domain.Message, error) {
	var recs []messageRecord
	q := s.db.WithContext(ctx).
		Where("room = ?", room).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	// Newest-first from the query, reversed to chronological.
	out := make([]domain.Message, len(recs))
	for i, rec := range recs {
		out[len(recs)-1-i] = domain.Message{
			Room:      rec.Room,
			Username:  rec.Username,
			Text:      rec.Text,
			CreatedAt: rec.CreatedAt,
		}
	}
	return out, nil
}
