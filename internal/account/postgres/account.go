package postgres

import (
	"github.com/frahmantamala/naming-registry/internal/account"
	accountDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/account"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.RepositoryAPI {
	return &AccountRepository{db: db}
}

// Lookups return every matching row on purpose: the service layer decides
// what more than one row on a unique column means.

func (r *AccountRepository) FindByUsername(username string) ([]*accountDatamodel.Account, error) {
	var rows []*accountDatamodel.Account
	err := r.db.Where("username = ?", username).Find(&rows).Error
	return rows, err
}

func (r *AccountRepository) FindByDomain(domain string) ([]*accountDatamodel.Account, error) {
	var rows []*accountDatamodel.Account
	err := r.db.Where("domain = ?", domain).Find(&rows).Error
	return rows, err
}

func (r *AccountRepository) FindByNetworkID(networkID string) ([]*accountDatamodel.Account, error) {
	var rows []*accountDatamodel.Account
	err := r.db.Where("network_id = ?", networkID).Find(&rows).Error
	return rows, err
}

func (r *AccountRepository) UpdateAbout(networkID, about string) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("network_id = ?", networkID).
		Update("about", about).Error
}

func (r *AccountRepository) UpdateDomain(networkID, domain string) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("network_id = ?", networkID).
		Update("domain", domain).Error
}

func (r *AccountRepository) UpdateUsername(networkID, username string) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("network_id = ?", networkID).
		Update("username", username).Error
}

func (r *AccountRepository) UpdateEnabled(networkID string, enabled bool) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("network_id = ?", networkID).
		Update("enabled", enabled).Error
}

func (r *AccountRepository) Delete(networkID string) error {
	return r.db.Where("network_id = ?", networkID).
		Delete(&accountDatamodel.Account{}).Error
}
