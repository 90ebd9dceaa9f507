package permission

import (
	"github.com/frahmantamala/naming-registry/internal"
)

// GrantDTO is the request payload for granting a module-scoped level.
// The assigner is the authenticated caller.
type GrantDTO struct {
	AssigneeExternalID string `json:"assignee_external_id"`
	Module             string `json:"module"`
	Level              string `json:"level"`
}

func (dto GrantDTO) Validate() error {
	if dto.AssigneeExternalID == "" {
		return internal.NewValidationError("assignee_external_id is required", internal.ErrCodeInvalidArgument)
	}
	if dto.Module == "" {
		return internal.NewValidationError("module is required", internal.ErrCodeInvalidArgument)
	}
	if dto.Level == "" {
		return internal.NewValidationError("level is required", internal.ErrCodeInvalidArgument)
	}
	return nil
}

// ClearDTO is the request payload for clearing a module's grants.
type ClearDTO struct {
	AssigneeExternalID string `json:"assignee_external_id"`
	Module             string `json:"module"`
}

func (dto ClearDTO) Validate() error {
	if dto.AssigneeExternalID == "" {
		return internal.NewValidationError("assignee_external_id is required", internal.ErrCodeInvalidArgument)
	}
	if dto.Module == "" {
		return internal.NewValidationError("module is required", internal.ErrCodeInvalidArgument)
	}
	return nil
}

// ClearResponse names the account whose grants were affected.
type ClearResponse struct {
	Username string `json:"username"`
}

// SetResponse is the wire form of a permission set.
type SetResponse struct {
	Grants []Grant `json:"grants"`
}
