package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/WalkerBel92/evaluation/api/http/presenter"
	"github.com/WalkerBel92/evaluation/pkg/user"
)

type UserHandler struct {
	useCase user.UseCase
}

func NewUserHandler(useCase user.UseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

type phoneDTO struct {
	Number      string `json:"number"`
	CityCode    string `json:"cityCode"`
	CountryCode string `json:"countryCode"`
}

// userRequest uses pointer fields so PATCH can distinguish an omitted
// field from an explicit value.
type userRequest struct {
	Name     *string     `json:"name"`
	Email    *string     `json:"email"`
	Password *string     `json:"password"`
	Phones   *[]phoneDTO `json:"phones"`
}

// Register handles user registration and issues the account token.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body userRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /users/ [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON inválido")
	}
	if errs := validateUserRequest(req, false); len(errs) > 0 {
		return presenter.Fields(c, http.StatusBadRequest, errs)
	}

	in := user.RegisterInput{
		Name:     *req.Name,
		Email:    *req.Email,
		Password: *req.Password,
	}
	if req.Phones != nil {
		in.Phones = toPhones(*req.Phones)
	}

	u, err := h.useCase.Register(c.Context(), in)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return presenter.Error(c, http.StatusConflict, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "No se pudo registrar el usuario")
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"id":        u.ID,
		"created":   u.Created,
		"modified":  u.Modified,
		"lastLogin": u.LastLogin,
		"token":     u.Token,
		"isActive":  u.IsActive,
	})
}

// List returns every registered user.
// @Summary List users
// @Tags    users
// @Produce json
// @Success 200 {array} user.User
// @Router  /users/ [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.useCase.ListAll(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "No se pudo obtener la lista")
	}
	if users == nil {
		users = []user.User{}
	}
	return presenter.JSON(c, http.StatusOK, users)
}

// GetByID returns a single user.
// @Summary Get user by id
// @Tags    users
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Success 200 {object} user.User
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID inválido")
	}
	u, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "No se pudo obtener el usuario")
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// Update applies a partial update; omitted fields keep their value.
// @Summary Update user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Param   input body userRequest true "fields to update"
// @Success 200 {object} user.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID inválido")
	}
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON inválido")
	}
	if errs := validateUserRequest(req, true); len(errs) > 0 {
		return presenter.Fields(c, http.StatusBadRequest, errs)
	}

	in := user.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Phones != nil {
		phones := toPhones(*req.Phones)
		in.Phones = &phones
	}

	u, err := h.useCase.Update(c.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, user.ErrEmailTaken):
			return presenter.Error(c, http.StatusConflict, err.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "No se pudo actualizar el usuario")
		}
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// Delete removes a user permanently.
// @Summary Delete user
// @Tags    users
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID inválido")
	}
	if err := h.useCase.DeleteByID(c.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "No se pudo eliminar el usuario")
	}
	return c.SendStatus(http.StatusNoContent)
}

func toPhones(dtos []phoneDTO) []user.Phone {
	phones := make([]user.Phone, 0, len(dtos))
	for _, p := range dtos {
		phones = append(phones, user.Phone{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return phones
}
