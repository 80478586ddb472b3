package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/adk-labs/platform/internal/api/write"
	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/metrics"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/repo"
)

type createTenantRequest struct {
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Tier     string          `json:"tier"`
	Settings json.RawMessage `json:"settings"`
}

type updateTenantRequest struct {
	Name     *string         `json:"name"`
	Tier     *string         `json:"tier"`
	Status   *string         `json:"status"`
	Settings json.RawMessage `json:"settings"`
}

type tenantResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	Status     string          `json:"status"`
	Tier       string          `json:"tier"`
	SchemaName string          `json:"schemaName"`
	Settings   json.RawMessage `json:"settings,omitempty"`
}

type tenantListResponse struct {
	Value []tenantResponse `json:"value"`
	Count int              `json:"count"`
}

func toTenantResponse(t *model.Tenant) tenantResponse {
	return tenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		Slug:       t.Slug,
		Status:     t.Status.String(),
		Tier:       t.Tier,
		SchemaName: t.SchemaName,
		Settings:   t.Settings,
	}
}

func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tenant := &model.Tenant{
		Name:     req.Name,
		Slug:     req.Slug,
		Tier:     req.Tier,
		Settings: req.Settings,
	}
	if tenant.Tier == "" {
		tenant.Tier = "starter"
	}

	err := h.manager.Tenant.CreateTenant(ctx, tenant)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	metrics.TenantsProvisionedCounter.Inc()
	write.JSON(ctx, w, http.StatusCreated, toTenantResponse(tenant))
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, err := h.manager.Tenant.GetTenantBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, toTenantResponse(tenant))
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	skip := queryInt(r, "skip", 0)
	top := queryInt(r, "top", repo.DefaultLimit)

	tenants, count, err := h.manager.Tenant.ListTenants(ctx, skip, top)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	response := tenantListResponse{
		Value: make([]tenantResponse, 0, len(tenants)),
		Count: count,
	}
	for _, tenant := range tenants {
		response.Value = append(response.Value, toTenantResponse(tenant))
	}

	write.JSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update := manager.TenantUpdate{
		Name:     req.Name,
		Tier:     req.Tier,
		Settings: req.Settings,
	}

	if req.Status != nil {
		status := model.TenantStatus(*req.Status)
		update.Status = &status
	}

	tenant, err := h.manager.Tenant.UpdateTenant(ctx, r.PathValue("slug"), update)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, toTenantResponse(tenant))
}

// DeprovisionTenant drops the tenant schema for good. The manager only
// accepts this for tenants already marked deleted.
func (h *Handler) DeprovisionTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.manager.Tenant.DeprovisionTenant(ctx, r.PathValue("slug"))
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusNoContent, nil)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
