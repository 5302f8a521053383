package entities

import "time"

// Message models the persisted representation of a chat message.
type Message struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Nickname    string    `gorm:"type:varchar(100);not null"`
	Content     string    `gorm:"type:text;not null"`
	MessageType string    `gorm:"type:varchar(10);default:text"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
