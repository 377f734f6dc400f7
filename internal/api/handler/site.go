package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voss/wpfleet/internal/api/request"
	"github.com/voss/wpfleet/internal/api/response"
	"github.com/voss/wpfleet/internal/core"
)

type Site struct {
	sites     *core.SiteService
	provision *core.ProvisionService
}

func NewSite(sites *core.SiteService, provision *core.ProvisionService) *Site {
	return &Site{sites: sites, provision: provision}
}

// DeprovisionResponse reports a completed site deletion, including any
// remote cleanup steps that failed.
type DeprovisionResponse struct {
	Domain   string   `json:"domain"`
	Warnings []string `json:"warnings,omitempty"`
}

// Create godoc
//
//	@Summary		Provision a new WordPress site
//	@Tags			Sites
//	@Security		ApiKeyAuth
//	@Param			body	body		request.CreateSite	true	"Site parameters"
//	@Success		201		{object}	model.Site
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Failure		502		{object}	response.ErrorResponse
//	@Failure		503		{object}	response.ErrorResponse
//	@Router			/sites [post]
func (h *Site) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSite
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	site, err := h.provision.Provision(r.Context(), core.ProvisionParams{
		Subdomain:   req.Subdomain,
		Reminder:    req.Reminder,
		NotifyEmail: req.NotifyEmail,
	})
	if err != nil {
		writeProvisionError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, site)
}

// writeProvisionError maps classified provisioning failures onto HTTP
// status codes. Anything unclassified is an internal error.
func writeProvisionError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	var allFailed *core.AllServersFailedError

	switch {
	case errors.As(err, &verr):
		response.WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, core.ErrSubdomainTaken):
		response.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrHostingNotConfigured),
		errors.Is(err, core.ErrNoServersAvailable),
		errors.Is(err, core.ErrBaseDomainNotSet):
		response.WriteError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &allFailed):
		response.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// List godoc
//
//	@Summary		List sites
//	@Tags			Sites
//	@Security		ApiKeyAuth
//	@Success		200	{object}	response.PaginatedResponse
//	@Router			/sites [get]
func (h *Site) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r, "created_at")

	sites, hasMore, err := h.sites.List(r.Context(), params)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	nextCursor := ""
	if hasMore && len(sites) > 0 {
		nextCursor = sites[len(sites)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, sites, nextCursor, hasMore)
}

// Get godoc
//
//	@Summary		Get a site by token
//	@Tags			Sites
//	@Security		ApiKeyAuth
//	@Success		200	{object}	model.Site
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/sites/{token} [get]
func (h *Site) Get(w http.ResponseWriter, r *http.Request) {
	token, err := request.RequireID(chi.URLParam(r, "token"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	site, err := h.sites.GetByToken(r.Context(), token)
	if errors.Is(err, core.ErrSiteNotFound) {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, site)
}

// Delete godoc
//
//	@Summary		Deprovision a site
//	@Tags			Sites
//	@Security		ApiKeyAuth
//	@Success		200	{object}	DeprovisionResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/sites/{token} [delete]
func (h *Site) Delete(w http.ResponseWriter, r *http.Request) {
	token, err := request.RequireID(chi.URLParam(r, "token"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.provision.Deprovision(r.Context(), token)
	if errors.Is(err, core.ErrSiteNotFound) {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, DeprovisionResponse{
		Domain:   result.Domain,
		Warnings: result.Warnings,
	})
}
