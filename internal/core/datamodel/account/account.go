package account

import "time"

// Account is the persistence model for a network identity's claim on a
// username. NetworkID, Username and (when set) Domain are each unique.
type Account struct {
	NetworkID string    `gorm:"column:network_id;primaryKey"`
	Username  string    `gorm:"column:username;uniqueIndex;not null"`
	Domain    *string   `gorm:"column:domain;uniqueIndex"`
	About     string    `gorm:"column:about"`
	Enabled   bool      `gorm:"column:enabled;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Account) TableName() string {
	return "account"
}
