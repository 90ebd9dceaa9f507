package account

import (
	"github.com/frahmantamala/naming-registry/internal"
)

const maxUsernameLength = 64

// EditAboutDTO is the request payload for updating profile text.
type EditAboutDTO struct {
	About string `json:"about"`
}

func (dto EditAboutDTO) Validate() error {
	return nil
}

// EditDomainDTO is the request payload for setting a custom domain.
type EditDomainDTO struct {
	Domain string `json:"domain"`
}

func (dto EditDomainDTO) Validate() error {
	if dto.Domain == "" {
		return internal.NewValidationError("domain is required", internal.ErrCodeInvalidArgument)
	}
	return nil
}

// EditUsernameDTO is the request payload for changing the reserved username.
type EditUsernameDTO struct {
	Username string `json:"username"`
}

func (dto EditUsernameDTO) Validate() error {
	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeInvalidArgument)
	}
	if len(dto.Username) > maxUsernameLength {
		return internal.NewValidationError("username is too long", internal.ErrCodeInvalidArgument)
	}
	return nil
}

// AvailabilityResponse reports how a username relates to the claimant.
type AvailabilityResponse struct {
	Status AvailabilityStatus `json:"status"`
}
