package permission

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/naming-registry/internal"
	"github.com/frahmantamala/naming-registry/internal/transport"
)

type ServiceAPI interface {
	Grant(assigneeExternalID, assignerExternalID, module, level string) error
	ClearModule(module, assigneeExternalID, assignerExternalID string) (string, error)
	GetForPair(assigneeExternalID, assignerExternalID string) (Set, error)
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

// Grant handles POST /permissions/grant
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var dto GrantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	if err := h.Service.Grant(dto.AssigneeExternalID, caller, dto.Module, dto.Level); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles POST /permissions/clear
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}

	var dto ClearDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	username, err := h.Service.ClearModule(dto.Module, dto.AssigneeExternalID, caller)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ClearResponse{Username: username})
}

// GetForPair handles GET /permissions
func (h *Handler) GetForPair(w http.ResponseWriter, r *http.Request) {
	assignee := r.URL.Query().Get("assignee_external_id")
	assigner := r.URL.Query().Get("assigner_external_id")
	if assignee == "" || assigner == "" {
		h.WriteError(w, http.StatusBadRequest, "assignee_external_id and assigner_external_id are required")
		return
	}

	set, err := h.Service.GetForPair(assignee, assigner)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	if set == nil {
		h.WriteError(w, http.StatusNotFound, "no permission relationship for pair")
		return
	}

	h.WriteJSON(w, http.StatusOK, SetResponse{Grants: set.Grants()})
}

func (h *Handler) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := internal.CallerFromContext(r.Context())
	if caller == "" {
		h.WriteError(w, http.StatusBadRequest, "caller network identity is required")
		return "", false
	}
	return caller, true
}
