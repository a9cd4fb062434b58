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

const dishesPath = "/dishes"

// DishHandler handles dish-related requests
type DishHandler struct {
	dishService *service.DishService
	chefService *service.ChefService
	events      Publisher
}

// NewDishHandler creates a new dish handler
func NewDishHandler(dishService *service.DishService, chefService *service.ChefService, events Publisher) *DishHandler {
	return &DishHandler{
		dishService: dishService,
		chefService: chefService,
		events:      events,
	}
}

// broadcastDishUpdate tells connected clients that a dish changed
func (h *DishHandler) broadcastDishUpdate(updateType string, id int64) {
	h.events.Publish(websockets.TypeDishUpdate, updateEvent{UpdateType: updateType, ID: id})
}

// List lists all dishes, echoing any error passed back by a form redirect
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.dishService.ListDishes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Dishes []*models.Dish `json:"dishes"`
		Error  string         `json:"error,omitempty"`
	}{
		Dishes: dishes,
		Error:  r.URL.Query().Get("error"),
	})
}

// Get gets a dish by ID
func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	dish, err := h.dishService.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dish)
}

// GetByCode gets a dish by its dish code
func (h *DishHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	dish, err := h.dishService.FindByDishCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dish)
}

// Create creates a dish from a JSON body
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	dish, err := h.dishService.CreateDish(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcastDishUpdate("created", dish.ID)
	respondJSON(w, http.StatusCreated, dish)
}

// Update updates a dish from a JSON body
func (h *DishHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req models.DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	dish, err := h.dishService.UpdateDish(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcastDishUpdate("updated", dish.ID)
	respondJSON(w, http.StatusOK, dish)
}

// Delete deletes a dish
func (h *DishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	if err := h.dishService.DeleteDish(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcastDishUpdate("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// AddForm creates a dish from the dish form and redirects to the list
func (h *DishHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	req, err := dishRequestFromForm(r)
	if err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	dish, err := h.dishService.CreateDish(r.Context(), req)
	if err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	h.broadcastDishUpdate("created", dish.ID)
	http.Redirect(w, r, dishesPath, http.StatusFound)
}

// EditForm updates a dish from the dish form and redirects to the list
func (h *DishHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	req, err := dishRequestFromForm(r)
	if err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	if _, err := h.dishService.UpdateDish(r.Context(), id, req); err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	h.broadcastDishUpdate("updated", id)
	http.Redirect(w, r, dishesPath, http.StatusFound)
}

// DeleteForm deletes a dish and redirects to the list
func (h *DishHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	if err := h.dishService.DeleteDish(r.Context(), id); err != nil {
		redirectWithError(w, r, dishesPath, err)
		return
	}

	h.broadcastDishUpdate("deleted", id)
	http.Redirect(w, r, dishesPath, http.StatusFound)
}

// FormData returns what the add/edit dish form needs. With an {id} the
// dish being edited is included; an unknown id redirects to the list.
func (h *DishHandler) FormData(w http.ResponseWriter, r *http.Request) {
	var dish *models.Dish
	if r.PathValue("id") != "" {
		id, err := pathID(r)
		if err != nil {
			redirectWithMessage(w, r, dishesPath, "DishNotFound.")
			return
		}

		dish, err = h.dishService.FindByID(r.Context(), id)
		if errors.Is(err, service.ErrNotFound) {
			redirectWithMessage(w, r, dishesPath, "DishNotFound.")
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	chefs, err := h.chefService.ListChefs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Dish     *models.Dish     `json:"dish"`
		Chefs    []*models.Chef   `json:"chefs"`
		Cuisines []models.Cuisine `json:"cuisines"`
	}{
		Dish:     dish,
		Chefs:    chefs,
		Cuisines: models.Cuisines,
	})
}

// dishRequestFromForm reads the dish form fields
func dishRequestFromForm(r *http.Request) (models.DishRequest, error) {
	chefIDs, err := formIDs(r, "chefsId")
	if err != nil {
		return models.DishRequest{}, err
	}

	prepTime, err := formInt(r, "preparationTime")
	if err != nil {
		return models.DishRequest{}, err
	}

	return models.DishRequest{
		DishCode:        r.PostFormValue("dishId"),
		Name:            r.PostFormValue("name"),
		Cuisine:         models.Cuisine(r.PostFormValue("cuisine")),
		PreparationTime: prepTime,
		ChefIDs:         chefIDs,
	}, nil
}
