package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voss/wpfleet/internal/api/request"
	"github.com/voss/wpfleet/internal/api/response"
	"github.com/voss/wpfleet/internal/core"
	"github.com/voss/wpfleet/internal/model"
	"github.com/voss/wpfleet/internal/platform"
)

type Server struct {
	svc *core.ServerService
}

func NewServer(svc *core.ServerService) *Server {
	return &Server{svc: svc}
}

// List godoc
//
//	@Summary		List hosting servers
//	@Tags			Servers
//	@Security		ApiKeyAuth
//	@Success		200	{object}	response.PaginatedResponse
//	@Router			/servers [get]
func (h *Server) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r, "created_at")

	servers, hasMore, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	nextCursor := ""
	if hasMore && len(servers) > 0 {
		nextCursor = servers[len(servers)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, servers, nextCursor, hasMore)
}

// Create godoc
//
//	@Summary		Register a hosting server
//	@Tags			Servers
//	@Security		ApiKeyAuth
//	@Param			body	body		request.CreateServer	true	"Server parameters"
//	@Success		201		{object}	model.Server
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/servers [post]
func (h *Server) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = model.ServerConnected
	}

	now := time.Now()
	server := &model.Server{
		ID:        platform.NewID(),
		RemoteID:  req.RemoteID,
		Name:      req.Name,
		IPAddress: req.IPAddress,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.svc.Create(r.Context(), server); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, server)
}

// Get godoc
//
//	@Summary		Get a hosting server
//	@Tags			Servers
//	@Security		ApiKeyAuth
//	@Success		200	{object}	model.Server
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/servers/{id} [get]
func (h *Server) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	server, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, core.ErrServerNotFound) {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, server)
}

// Update godoc
//
//	@Summary		Update a hosting server
//	@Tags			Servers
//	@Security		ApiKeyAuth
//	@Param			body	body		request.UpdateServer	true	"Server parameters"
//	@Success		200		{object}	model.Server
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/servers/{id} [put]
func (h *Server) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateServer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	server, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, core.ErrServerNotFound) {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.RemoteID != "" {
		server.RemoteID = req.RemoteID
	}
	if req.Name != "" {
		server.Name = req.Name
	}
	if req.IPAddress != "" {
		server.IPAddress = req.IPAddress
	}
	if req.Status != "" {
		server.Status = req.Status
	}

	if err := h.svc.Update(r.Context(), server); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, server)
}

// Delete godoc
//
//	@Summary		Remove a hosting server from the pool
//	@Tags			Servers
//	@Security		ApiKeyAuth
//	@Success		204
//	@Router			/servers/{id} [delete]
func (h *Server) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
