package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pizza-nz/dish-admin/internal/api"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/service"
	"github.com/pizza-nz/dish-admin/internal/websockets"
)

const chefsPath = "/chefs"

// ChefHandler handles chef-related requests
type ChefHandler struct {
	chefService *service.ChefService
	dishService *service.DishService
	events      Publisher
}

// NewChefHandler creates a new chef handler
func NewChefHandler(chefService *service.ChefService, dishService *service.DishService, events Publisher) *ChefHandler {
	return &ChefHandler{
		chefService: chefService,
		dishService: dishService,
		events:      events,
	}
}

func (h *ChefHandler) broadcastChefUpdate(updateType string, id int64) {
	h.events.Publish(websockets.TypeChefUpdate, updateEvent{UpdateType: updateType, ID: id})
}

// List lists all chefs
func (h *ChefHandler) List(w http.ResponseWriter, r *http.Request) {
	chefs, err := h.chefService.ListChefs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Chefs []*models.Chef `json:"chefs"`
		Error string         `json:"error,omitempty"`
	}{
		Chefs: chefs,
		Error: r.URL.Query().Get("error"),
	})
}

// Get gets a chef by ID
func (h *ChefHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	chef, err := h.chefService.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, chef)
}

// Dishes returns a chef together with the full dishes it is linked to
func (h *ChefHandler) Dishes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	chef, err := h.chefService.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dishes, err := h.dishService.ListByChef(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Chef   *models.Chef   `json:"chef"`
		Dishes []*models.Dish `json:"dishes"`
	}{
		Chef:   chef,
		Dishes: dishes,
	})
}

// Create creates a chef from a JSON body
func (h *ChefHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ChefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	chef, err := h.chefService.CreateChef(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcastChefUpdate("created", chef.ID)
	respondJSON(w, http.StatusCreated, chef)
}

// Update updates a chef from a JSON body
func (h *ChefHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req models.ChefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	chef, err := h.chefService.UpdateChef(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcastChefUpdate("updated", chef.ID)
	respondJSON(w, http.StatusOK, chef)
}

// Delete deletes a chef
func (h *ChefHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	if err := h.chefService.DeleteChef(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcastChefUpdate("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// AddForm creates a chef from the chef form
func (h *ChefHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	chef, err := h.chefService.CreateChef(r.Context(), chefRequestFromForm(r))
	if err != nil {
		redirectWithError(w, r, chefsPath, err)
		return
	}

	h.broadcastChefUpdate("created", chef.ID)
	http.Redirect(w, r, chefsPath, http.StatusFound)
}

// EditForm updates a chef from the chef form
func (h *ChefHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		redirectWithError(w, r, chefsPath, err)
		return
	}

	if _, err := h.chefService.UpdateChef(r.Context(), id, chefRequestFromForm(r)); err != nil {
		redirectWithError(w, r, chefsPath, err)
		return
	}

	h.broadcastChefUpdate("updated", id)
	http.Redirect(w, r, chefsPath, http.StatusFound)
}

// DeleteForm deletes a chef
func (h *ChefHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		redirectWithError(w, r, chefsPath, err)
		return
	}

	if err := h.chefService.DeleteChef(r.Context(), id); err != nil {
		redirectWithError(w, r, chefsPath, err)
		return
	}

	h.broadcastChefUpdate("deleted", id)
	http.Redirect(w, r, chefsPath, http.StatusFound)
}

// FormData returns what the add/edit chef form needs
func (h *ChefHandler) FormData(w http.ResponseWriter, r *http.Request) {
	var chef *models.Chef
	if r.PathValue("id") != "" {
		id, err := pathID(r)
		if err != nil {
			redirectWithMessage(w, r, chefsPath, "ChefNotFound.")
			return
		}

		chef, err = h.chefService.FindByID(r.Context(), id)
		if errors.Is(err, service.ErrNotFound) {
			redirectWithMessage(w, r, chefsPath, "ChefNotFound.")
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, struct {
		Chef    *models.Chef    `json:"chef"`
		Genders []models.Gender `json:"genders"`
	}{
		Chef:    chef,
		Genders: models.Genders,
	})
}

func chefRequestFromForm(r *http.Request) models.ChefRequest {
	return models.ChefRequest{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Bio:       r.PostFormValue("bio"),
		Gender:    models.Gender(r.PostFormValue("gender")),
	}
}
