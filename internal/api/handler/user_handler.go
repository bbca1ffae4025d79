package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fittracker/user-service/internal/core/domain"
	"github.com/fittracker/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations. It decodes and
// validates requests, delegates to the service, and maps entities to views;
// all business rules live in the service.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users — all users, full view.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}  userResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.FindAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// ListSimple handles GET /v1/users/simple — all users, simplified view.
//
// @Summary      List all users (simplified view)
// @Tags         users
// @Produce      json
// @Success      200  {array}  simpleUserResponse
// @Router       /v1/users/simple [get]
func (h *UserHandler) ListSimple(c echo.Context) error {
	users, err := h.service.FindAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSimpleUserResponses(users))
}

// ListByEmail handles GET /v1/users/email?email=X — the user matching the
// exact email (zero or one entries), or all users when no email is given.
//
// @Summary      List users filtered by exact email match
// @Tags         users
// @Produce      json
// @Param        email  query     string  false  "Email to match exactly"
// @Success      200    {array}   emailUserResponse
// @Router       /v1/users/email [get]
func (h *UserHandler) ListByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		users, err := h.service.FindAllUsers(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toEmailUserResponses(users))
	}

	user, err := h.service.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusOK, []emailUserResponse{})
		}
		return err
	}
	return c.JSON(http.StatusOK, []emailUserResponse{toEmailUserResponse(user)})
}

// ListOlderThan handles GET /v1/users/older/:date — users whose birthdate is
// strictly before the given date. An unparsable date is a client error.
//
// @Summary      List users born strictly before a date
// @Tags         users
// @Produce      json
// @Param        date  path      string  true  "Cutoff date (YYYY-MM-DD)"
// @Success      200   {array}   userResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/users/older/{date} [get]
func (h *UserHandler) ListOlderThan(c echo.Context) error {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	users, err := h.service.FindUsersBornBefore(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /v1/users/:id — one user, full view.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {string}  string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetSimple handles GET /v1/users/simple/:id — one user, simplified view.
//
// @Summary      Get a user by id (simplified view)
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  simpleUserResponse
// @Failure      404  {string}  string
// @Router       /v1/users/simple/{id} [get]
func (h *UserHandler) GetSimple(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSimpleUserResponse(user))
}

// Create handles POST /v1/users — creates a user, returns the full view.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User fields (no id)"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {string}  string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.CreateUser(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(created))
}

// Update handles PUT /v1/users/:id — partial update, returns the full view.
//
// @Summary      Update a user by id
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to overwrite (absent fields are kept)"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {string}  string
// @Failure      409   {string}  string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user by id
// @Tags         users
// @Success      204
// @Failure      404  {string}  string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
