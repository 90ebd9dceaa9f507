package postgres

import (
	permissionDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/permission"
	"github.com/frahmantamala/naming-registry/internal/permission"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

// FindByPair returns every row for the ordered pair. The unique constraint
// should make more than one impossible; the service treats extras as an
// integrity violation.
func (r *PermissionRepository) FindByPair(assigneeExternalID, assignerExternalID string) ([]*permissionDatamodel.UserPermission, error) {
	var rows []*permissionDatamodel.UserPermission
	err := r.db.
		Where("assignee_external_id = ? AND assigner_external_id = ?", assigneeExternalID, assignerExternalID).
		Find(&rows).Error
	return rows, err
}

func (r *PermissionRepository) Create(row *permissionDatamodel.UserPermission) error {
	return r.db.Create(row).Error
}

func (r *PermissionRepository) UpdatePermissions(assigneeExternalID, assignerExternalID, encoded string) error {
	return r.db.Model(&permissionDatamodel.UserPermission{}).
		Where("assignee_external_id = ? AND assigner_external_id = ?", assigneeExternalID, assignerExternalID).
		Update("permissions", encoded).Error
}
