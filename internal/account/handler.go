package account

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/naming-registry/internal"
	"github.com/frahmantamala/naming-registry/internal/transport"
)

type ServiceAPI interface {
	FindAccount(args FindArgs) (*Account, error)
	CheckUsernameAvailability(username, claimantNetworkID string) (AvailabilityStatus, error)
	EditAbout(networkID string, dto EditAboutDTO) error
	EditDomain(networkID string, dto EditDomainDTO) error
	EditUsername(networkID string, dto EditUsernameDTO) error
	SetEnabled(networkID string, enabled bool) error
	Destroy(networkID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
	}
}

// Lookup handles GET /accounts/lookup
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	args := FindArgs{
		Username:  r.URL.Query().Get("username"),
		Domain:    r.URL.Query().Get("domain"),
		NetworkID: r.URL.Query().Get("network_id"),
	}

	acct, err := h.Service.FindAccount(args)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	if acct == nil {
		h.WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, acct)
}

// Availability handles GET /accounts/availability
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	status, err := h.Service.CheckUsernameAvailability(r.URL.Query().Get("username"), caller)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AvailabilityResponse{Status: status})
}

// EditAbout handles PATCH /accounts/about
func (h *Handler) EditAbout(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var dto EditAboutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.EditAbout(caller, dto); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditDomain handles PATCH /accounts/domain
func (h *Handler) EditDomain(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var dto EditDomainDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.EditDomain(caller, dto); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditUsername handles PATCH /accounts/username
func (h *Handler) EditUsername(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var dto EditUsernameDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.EditUsername(caller, dto); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Enable handles POST /accounts/enable
func (h *Handler) Enable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, true)
}

// Disable handles POST /accounts/disable
func (h *Handler) Disable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, false)
}

func (h *Handler) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	if err := h.Service.SetEnabled(caller, enabled); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Destroy handles DELETE /accounts
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	if err := h.Service.Destroy(caller); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := internal.CallerFromContext(r.Context())
	if caller == "" {
		h.WriteError(w, http.StatusBadRequest, "caller network identity is required")
		return "", false
	}
	return caller, true
}
