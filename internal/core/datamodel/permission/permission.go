package permission

import "time"

// UserPermission is the persistence model for one permission relationship:
// the set of module-scoped rights an assigner has granted to an assignee.
// The pair is unique; Permissions holds the canonical encoded set and may
// be empty, which is a distinct state from the row being absent.
type UserPermission struct {
	ID                 int64     `gorm:"primaryKey"`
	AssigneeExternalID string    `gorm:"column:assignee_external_id;not null;uniqueIndex:idx_permission_pair"`
	AssignerExternalID string    `gorm:"column:assigner_external_id;not null;uniqueIndex:idx_permission_pair"`
	Permissions        string    `gorm:"column:permissions;not null"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time `gorm:"column:updated_at;default:now()"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
