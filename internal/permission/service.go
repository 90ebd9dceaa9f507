package permission

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/naming-registry/internal"
	"github.com/frahmantamala/naming-registry/internal/account"
	permissionDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/permission"
)

// RepositoryAPI is the store boundary for permission relationship rows.
// FindByPair returns every matching row so the service can detect a broken
// pair-uniqueness invariant rather than merge rows.
type RepositoryAPI interface {
	FindByPair(assigneeExternalID, assignerExternalID string) ([]*permissionDatamodel.UserPermission, error)
	Create(row *permissionDatamodel.UserPermission) error
	UpdatePermissions(assigneeExternalID, assignerExternalID, encoded string) error
}

// AccountDirectory resolves accounts by their external network identity.
// Implemented by the account service.
type AccountDirectory interface {
	GetByNetworkID(networkID string) (*account.Account, error)
}

type Service struct {
	repo     RepositoryAPI
	accounts AccountDirectory
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, accounts AccountDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		logger:   logger,
	}
}

// loadPair resolves the relationship row for an ordered pair: absent,
// present, or a surfaced integrity violation when the unique-pair
// constraint is broken.
func (s *Service) loadPair(assigneeExternalID, assignerExternalID string) (*permissionDatamodel.UserPermission, error) {
	rows, err := s.repo.FindByPair(assigneeExternalID, assignerExternalID)
	if err != nil {
		s.logger.Error("permission lookup failed",
			"assignee", assigneeExternalID, "assigner", assignerExternalID, "error", err)
		return nil, err
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		s.logger.Error("unique pair matched multiple rows",
			"assignee", assigneeExternalID, "assigner", assignerExternalID, "count", len(rows))
		return nil, internal.NewDataIntegrityError(fmt.Sprintf(
			"expected at most one permission row for pair (%s, %s), found %d",
			assigneeExternalID, assignerExternalID, len(rows)))
	}
}

// Grant gives the assignee a level on a module, replacing any level the
// relationship already holds for that module. The assigner must have an
// account: without one it has no standing to delegate anything.
func (s *Service) Grant(assigneeExternalID, assignerExternalID, module, level string) error {
	assigner, err := s.accounts.GetByNetworkID(assignerExternalID)
	if err != nil {
		return err
	}
	if assigner == nil {
		return internal.NewForbiddenError(
			fmt.Sprintf("%s cannot manage permissions for %s", assignerExternalID, assigneeExternalID),
			internal.ErrCodeNoManagePermission)
	}

	row, err := s.loadPair(assigneeExternalID, assignerExternalID)
	if err != nil {
		return err
	}

	if row == nil {
		set := NewSet()
		set.Grant(module, level)
		if err := s.repo.Create(&permissionDatamodel.UserPermission{
			AssigneeExternalID: assigneeExternalID,
			AssignerExternalID: assignerExternalID,
			Permissions:        set.Encode(),
		}); err != nil {
			s.logger.Error("failed to insert permission row",
				"assignee", assigneeExternalID, "assigner", assignerExternalID, "error", err)
			return err
		}
		s.logger.Info("permission granted",
			"assignee", assigneeExternalID, "assigner", assignerExternalID,
			"module", module, "level", level)
		return nil
	}

	set, err := ParseSet(row.Permissions)
	if err != nil {
		return err
	}
	set.Grant(module, level)

	if err := s.repo.UpdatePermissions(assigneeExternalID, assignerExternalID, set.Encode()); err != nil {
		s.logger.Error("failed to update permission row",
			"assignee", assigneeExternalID, "assigner", assignerExternalID, "error", err)
		return err
	}
	s.logger.Info("permission granted",
		"assignee", assigneeExternalID, "assigner", assignerExternalID,
		"module", module, "level", level)
	return nil
}

// ClearModule removes every entry for a module from the relationship and
// reports the assignee's username so callers can name the affected
// account. Clearing when no relationship row exists is a no-op, not an
// error; an emptied set is written back as an empty string, the row is
// kept.
func (s *Service) ClearModule(module, assigneeExternalID, assignerExternalID string) (string, error) {
	assigner, err := s.accounts.GetByNetworkID(assignerExternalID)
	if err != nil {
		return "", err
	}
	if assigner == nil {
		return "", internal.NewNotFoundError(
			fmt.Sprintf("%s does not have an account. Create an account first.", assignerExternalID),
			internal.ErrCodeNoAccount)
	}

	assignee, err := s.accounts.GetByNetworkID(assigneeExternalID)
	if err != nil {
		return "", err
	}
	username := ""
	if assignee != nil {
		username = assignee.Username
	}

	row, err := s.loadPair(assigneeExternalID, assignerExternalID)
	if err != nil {
		return "", err
	}
	if row == nil {
		return username, nil
	}

	set, err := ParseSet(row.Permissions)
	if err != nil {
		return "", err
	}
	set.ClearModule(module)

	if err := s.repo.UpdatePermissions(assigneeExternalID, assignerExternalID, set.Encode()); err != nil {
		s.logger.Error("failed to clear module permissions",
			"assignee", assigneeExternalID, "assigner", assignerExternalID,
			"module", module, "error", err)
		return "", err
	}
	s.logger.Info("module permissions cleared",
		"assignee", assigneeExternalID, "assigner", assignerExternalID, "module", module)
	return username, nil
}

// GetForPair returns the decoded permission set for the pair, or nil when
// no relationship row exists.
func (s *Service) GetForPair(assigneeExternalID, assignerExternalID string) (Set, error) {
	row, err := s.loadPair(assigneeExternalID, assignerExternalID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return ParseSet(row.Permissions)
}
