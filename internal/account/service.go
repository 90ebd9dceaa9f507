package account

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/naming-registry/internal"
	accountDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/account"
)

// RepositoryAPI is the store boundary for account rows. Lookups return
// every matching row so the service can detect broken uniqueness
// invariants instead of silently picking one.
type RepositoryAPI interface {
	FindByUsername(username string) ([]*accountDatamodel.Account, error)
	FindByDomain(domain string) ([]*accountDatamodel.Account, error)
	FindByNetworkID(networkID string) ([]*accountDatamodel.Account, error)
	UpdateAbout(networkID, about string) error
	UpdateDomain(networkID, domain string) error
	UpdateUsername(networkID, username string) error
	UpdateEnabled(networkID string, enabled bool) error
	Delete(networkID string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// singleOrNone collapses a lookup on a unique column to at most one row.
// More than one row means the schema invariant is broken; that is surfaced,
// never resolved by picking a winner.
func (s *Service) singleOrNone(rows []*accountDatamodel.Account, selector string) (*accountDatamodel.Account, error) {
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		s.logger.Error("unique selector matched multiple rows", "selector", selector, "count", len(rows))
		return nil, internal.NewDataIntegrityError(
			fmt.Sprintf("expected at most one account for %s, found %d", selector, len(rows)))
	}
}

// FindAccount resolves an account by exactly one of username, domain or
// network id. Absent is not an error: the caller gets (nil, nil).
func (s *Service) FindAccount(args FindArgs) (*Account, error) {
	if args.selectorCount() != 1 {
		return nil, internal.NewValidationError(
			"exactly one of username, domain or network id must be specified",
			internal.ErrCodeInvalidArgument)
	}

	var (
		rows     []*accountDatamodel.Account
		selector string
		err      error
	)
	switch {
	case args.Domain != "":
		selector = "domain " + args.Domain
		rows, err = s.repo.FindByDomain(args.Domain)
	case args.Username != "":
		selector = "username " + args.Username
		rows, err = s.repo.FindByUsername(args.Username)
	default:
		selector = "network id " + args.NetworkID
		rows, err = s.repo.FindByNetworkID(args.NetworkID)
	}
	if err != nil {
		s.logger.Error("account lookup failed", "selector", selector, "error", err)
		return nil, err
	}

	row, err := s.singleOrNone(rows, selector)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// CheckUsernameAvailability classifies a username against the claimant:
// AVAILABLE when nobody holds it, OWN when the claimant does, TAKEN
// otherwise.
func (s *Service) CheckUsernameAvailability(username, claimantNetworkID string) (AvailabilityStatus, error) {
	if username == "" {
		return "", internal.NewValidationError("username is required", internal.ErrCodeInvalidArgument)
	}

	rows, err := s.repo.FindByUsername(username)
	if err != nil {
		s.logger.Error("availability lookup failed", "username", username, "error", err)
		return "", err
	}

	holder, err := s.singleOrNone(rows, "username "+username)
	if err != nil {
		return "", err
	}
	if holder == nil {
		return StatusAvailable, nil
	}
	if holder.NetworkID == claimantNetworkID {
		return StatusOwn, nil
	}
	return StatusTaken, nil
}

// GetByNetworkID is a convenience wrapper used by collaborating services
// to resolve an account by its external identity.
func (s *Service) GetByNetworkID(networkID string) (*Account, error) {
	return s.FindAccount(FindArgs{NetworkID: networkID})
}

// ensureExists guards every mutation: the account must exist before any
// field write or state change.
func (s *Service) ensureExists(networkID string) (*Account, error) {
	acct, err := s.GetByNetworkID(networkID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, internal.NewNotFoundError(
			fmt.Sprintf("the user %s does not exist", networkID),
			internal.ErrCodeUserNotFound)
	}
	return acct, nil
}

func (s *Service) EditAbout(networkID string, dto EditAboutDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if _, err := s.ensureExists(networkID); err != nil {
		return err
	}
	if err := s.repo.UpdateAbout(networkID, dto.About); err != nil {
		s.logger.Error("failed to update about", "network_id", networkID, "error", err)
		return err
	}
	return nil
}

func (s *Service) EditDomain(networkID string, dto EditDomainDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if _, err := s.ensureExists(networkID); err != nil {
		return err
	}
	if err := s.repo.UpdateDomain(networkID, dto.Domain); err != nil {
		s.logger.Error("failed to update domain", "network_id", networkID, "error", err)
		return err
	}
	return nil
}

func (s *Service) EditUsername(networkID string, dto EditUsernameDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if _, err := s.ensureExists(networkID); err != nil {
		return err
	}
	if err := s.repo.UpdateUsername(networkID, dto.Username); err != nil {
		s.logger.Error("failed to update username", "network_id", networkID, "error", err)
		return err
	}
	return nil
}

// SetEnabled flips the account's enabled flag. The write is unconditional
// once existence is confirmed.
func (s *Service) SetEnabled(networkID string, enabled bool) error {
	if _, err := s.ensureExists(networkID); err != nil {
		return err
	}
	if err := s.repo.UpdateEnabled(networkID, enabled); err != nil {
		s.logger.Error("failed to update enabled flag", "network_id", networkID, "enabled", enabled, "error", err)
		return err
	}
	s.logger.Info("account enabled flag updated", "network_id", networkID, "enabled", enabled)
	return nil
}

// Destroy deletes a disabled account. An active account is refused with a
// structured error, not retried or forced.
func (s *Service) Destroy(networkID string) error {
	acct, err := s.ensureExists(networkID)
	if err != nil {
		return err
	}
	if acct.Enabled {
		return internal.NewConflictError(
			"an account in active status cannot be deleted",
			internal.ErrCodeCannotDeleteActive)
	}
	if err := s.repo.Delete(networkID); err != nil {
		s.logger.Error("failed to delete account", "network_id", networkID, "error", err)
		return err
	}
	s.logger.Info("account deleted", "network_id", networkID)
	return nil
}
