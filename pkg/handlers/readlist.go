package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"anitrack/pkg/readlist"
)

type ReadListForm struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Title      string `json:"title"`
	Poster     string `json:"poster"`
	Color      string `json:"color"`
	Type       string `json:"type"`
}

type ReadListHandler struct {
	Service readlist.ServiceInterface
	Logger  *slog.Logger
}

func NewReadListHandler(service readlist.ServiceInterface, logger *slog.Logger) *ReadListHandler {
	return &ReadListHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *ReadListHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := getIdentityFromContext(w, r)
	if !ok {
		return
	}

	items, err := h.Service.List(r.Context(), id.User.ID)
	if err != nil {
		writeServerError(w, h.Logger, "read list", err)
		return
	}

	writeJSON(w, h.Logger, map[string]any{"readList": items})
}

func (h *ReadListHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := getIdentityFromContext(w, r)
	if !ok {
		return
	}

	var req ReadListForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	item, created, err := h.Service.Add(r.Context(), id.User.ID, readlist.Item{
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
		Title:      req.Title,
		Poster:     req.Poster,
		Color:      req.Color,
		Type:       req.Type,
	})
	if err != nil {
		if errors.Is(err, readlist.ErrValidation) {
			writeError(w, http.StatusBadRequest, typeError, err.Error())
			return
		}
		writeServerError(w, h.Logger, "read list add", err)
		return
	}

	if !created {
		writeJSON(w, h.Logger, map[string]any{
			typeMessage: readlist.ErrAlreadyExists.Error(),
			"item":      item,
		})
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"item": item}, http.StatusCreated); ok {
		h.Logger.Info("read list add", "user", id.User.ID, "provider", item.Provider, "providerId", item.ProviderID)
	}
}

func (h *ReadListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := getIdentityFromContext(w, r)
	if !ok {
		return
	}

	var req ReadListForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	err := h.Service.Remove(r.Context(), id.User.ID, req.Provider, req.ProviderID)
	switch {
	case errors.Is(err, readlist.ErrValidation):
		writeError(w, http.StatusBadRequest, typeError, err.Error())
		return
	case errors.Is(err, readlist.ErrNotFound):
		writeError(w, http.StatusNotFound, typeError, err.Error())
		return
	case err != nil:
		writeServerError(w, h.Logger, "read list remove", err)
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{typeMessage: "removed"}); ok {
		h.Logger.Info("read list remove", "user", id.User.ID, "provider", req.Provider, "providerId", req.ProviderID)
	}
}
