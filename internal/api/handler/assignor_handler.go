package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

// AssignorHandler serves /integrations/assignor.
type AssignorHandler struct {
	service ports.AssignorService
}

func NewAssignorHandler(service ports.AssignorService) *AssignorHandler {
	return &AssignorHandler{service: service}
}

// Create handles POST /integrations/assignor.
//
// @Summary      Create an assignor
// @Tags         assignor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAssignorRequest  true  "Assignor"
// @Success      201   {object}  domain.Assignor
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /integrations/assignor [post]
func (h *AssignorHandler) Create(c echo.Context) error {
	var req createAssignorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), actor(c), domain.Assignor{
		ID:       req.ID,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /integrations/assignor.
//
// @Summary      List assignors
// @Tags         assignor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Assignor
// @Router       /integrations/assignor [get]
func (h *AssignorHandler) List(c echo.Context) error {
	list, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /integrations/assignor/:id.
//
// @Summary      Get an assignor
// @Tags         assignor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignor id"
// @Success      200  {object}  domain.Assignor
// @Failure      404  {object}  errorResponse
// @Router       /integrations/assignor/{id} [get]
func (h *AssignorHandler) Get(c echo.Context) error {
	a, err := h.service.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Update handles PATCH /integrations/assignor/:id.
//
// @Summary      Update an assignor
// @Tags         assignor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Assignor id"
// @Param        body  body      updateAssignorRequest  true  "Fields to change"
// @Success      200   {object}  domain.Assignor
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /integrations/assignor/{id} [patch]
func (h *AssignorHandler) Update(c echo.Context) error {
	var req updateAssignorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), actor(c), c.Param("id"), domain.AssignorPatch{
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /integrations/assignor/:id and returns the removed record.
//
// @Summary      Delete an assignor
// @Tags         assignor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignor id"
// @Success      200  {object}  domain.Assignor
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /integrations/assignor/{id} [delete]
func (h *AssignorHandler) Delete(c echo.Context) error {
	a, err := h.service.Remove(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
