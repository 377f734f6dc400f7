package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voss/wpfleet/internal/api/request"
	"github.com/voss/wpfleet/internal/api/response"
	"github.com/voss/wpfleet/internal/core"
)

type Setting struct {
	svc *core.SettingService
}

func NewSetting(svc *core.SettingService) *Setting {
	return &Setting{svc: svc}
}

// List godoc
//
//	@Summary		List all settings
//	@Tags			Settings
//	@Security		ApiKeyAuth
//	@Success		200	{array}	model.Setting
//	@Router			/settings [get]
func (h *Setting) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, settings)
}

// Get godoc
//
//	@Summary		Get a setting by key
//	@Tags			Settings
//	@Security		ApiKeyAuth
//	@Success		200	{object}	model.Setting
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/settings/{key} [get]
func (h *Setting) Get(w http.ResponseWriter, r *http.Request) {
	key, err := request.RequireID(chi.URLParam(r, "key"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	setting, err := h.svc.Get(r.Context(), key)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, setting)
}

// Update godoc
//
//	@Summary		Set a setting value
//	@Tags			Settings
//	@Security		ApiKeyAuth
//	@Param			body	body		request.UpdateSetting	true	"Setting value"
//	@Success		200		{object}	model.Setting
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/settings/{key} [put]
func (h *Setting) Update(w http.ResponseWriter, r *http.Request) {
	key, err := request.RequireID(chi.URLParam(r, "key"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateSetting
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Set(r.Context(), key, req.Value); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	setting, err := h.svc.Get(r.Context(), key)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, setting)
}
