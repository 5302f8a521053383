package message

import (
	"context"

	"gorm.io/gorm"

	domain "deskchat-server/internal/domain/message"
	"deskchat-server/internal/infrastructure/database/entities"
)

// searchResultCap bounds every search, matching the fixed wire contract.
const searchResultCap = 100

// PostgresRepository persists chat messages via PostgreSQL using GORM.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a repository backed by the provided DB.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ domain.Repository = (*PostgresRepository)(nil)

// Insert stores the message and returns it with the db-assigned id and
// created_at.
func (r *PostgresRepository) Insert(ctx context.Context, msg domain.Message) (domain.Message, error) {
	record := entities.Message{
		Nickname:    msg.Nickname,
		Content:     msg.Content,
		MessageType: string(msg.Type),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Message{}, err
	}
	return toDomain(record), nil
}

// RecentHistory fetches the newest limit rows and reverses them so the
// caller replays oldest-first.
func (r *PostgresRepository) RecentHistory(ctx context.Context, limit int) ([]domain.Message, error) {
	var records []entities.Message
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, toDomain(records[i]))
	}
	return out, nil
}

// Search applies the ANDed filter predicates and returns matches
// newest-first, capped at searchResultCap rows.
func (r *PostgresRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).Model(&entities.Message{})

	if filter.Nickname != "" {
		q = q.Where("nickname ILIKE ?", "%"+filter.Nickname+"%")
	}
	if filter.Keyword != "" {
		q = q.Where("content ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Year != 0 {
		q = q.Where("EXTRACT(YEAR FROM created_at) = ?", filter.Year)
	}
	if filter.Month != 0 {
		q = q.Where("EXTRACT(MONTH FROM created_at) = ?", filter.Month)
	}
	if filter.Day != 0 {
		q = q.Where("EXTRACT(DAY FROM created_at) = ?", filter.Day)
	}

	var records []entities.Message
	err := q.Order("created_at DESC, id DESC").
		Limit(searchResultCap).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(records))
	for _, record := range records {
		out = append(out, toDomain(record))
	}
	return out, nil
}

func toDomain(record entities.Message) domain.Message {
	return domain.Message{
		ID:        record.ID,
		Nickname:  record.Nickname,
		Content:   record.Content,
		Type:      domain.ParseType(record.MessageType),
		CreatedAt: record.CreatedAt,
	}
}
