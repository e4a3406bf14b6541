package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/metrics"
	"github.com/fleetkeeper/fleetkeeper/internal/services/authority"
	"go.uber.org/zap"
)

// PermissionHandler serves the permission table over HTTP
type PermissionHandler struct {
	authority authority.AuthorityInterface
	collector *metrics.Collector
	exporter  *metrics.PrometheusExporter
	logger    *zap.Logger
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(
	auth authority.AuthorityInterface,
	collector *metrics.Collector,
	exporter *metrics.PrometheusExporter,
	logger *zap.Logger,
) *PermissionHandler {
	return &PermissionHandler{
		authority: auth,
		collector: collector,
		exporter:  exporter,
		logger:    logger,
	}
}

type permissionRuleResponse struct {
	Role      string    `json:"role"`
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	Allowed   bool      `json:"allowed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type checkRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

type updateRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Allowed  bool   `json:"allowed"`
}

func ruleToResponse(rule *entities.PermissionRule) permissionRuleResponse {
	return permissionRuleResponse{
		Role:      string(rule.Role),
		Resource:  string(rule.Resource),
		Action:    string(rule.Action),
		Allowed:   rule.Allowed,
		UpdatedAt: rule.UpdatedAt,
	}
}

// List handles GET /v1/permissions: the mirrored permission table.
// Absent rows are simply absent; consumers treat them as denied.
func (h *PermissionHandler) List(w http.ResponseWriter, r *http.Request) {
	rules := h.authority.Rules()
	resp := make([]permissionRuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, ruleToResponse(rule))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Check handles POST /v1/permissions/check.
func (h *PermissionHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := entities.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resource, err := entities.ParseResource(req.Resource)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, err := entities.ParseAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	allowed := h.authority.CanAccess(role, resource, action)

	h.collector.RecordPermissionCheck(allowed)
	if h.exporter != nil {
		h.exporter.RecordPermissionCheck(allowed)
	}

	writeJSON(w, http.StatusOK, checkResponse{Allowed: allowed})
}

// Update handles PUT /v1/permissions. Only admin callers may change the
// table; the caller's role arrives from the session gateway.
func (h *PermissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerRole(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or unknown caller role")
		return
	}

	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := entities.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resource, err := entities.ParseResource(req.Resource)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, err := entities.ParseAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.authority.Update(r.Context(), caller, role, resource, action, req.Allowed)
	if err != nil {
		h.collector.RecordPermissionWrite(false)
		if h.exporter != nil {
			h.exporter.RecordPermissionUpdate(false)
		}

		if errors.Is(err, authority.ErrUnauthorized) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		var storeErr *authority.StoreError
		if errors.As(err, &storeErr) {
			h.logger.Error("permission store write failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "permission store unavailable")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.collector.RecordPermissionWrite(true)
	if h.exporter != nil {
		h.exporter.RecordPermissionUpdate(true)
	}

	h.logger.Info("permission updated",
		zap.String("key", stored.Key().String()),
		zap.Bool("allowed", stored.Allowed))

	writeJSON(w, http.StatusOK, ruleToResponse(stored))
}
