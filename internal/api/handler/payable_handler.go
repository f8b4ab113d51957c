package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

// PayableHandler serves /integrations/payable.
type PayableHandler struct {
	service ports.PayableService
}

func NewPayableHandler(service ports.PayableService) *PayableHandler {
	return &PayableHandler{service: service}
}

// Create handles POST /integrations/payable.
//
// @Summary      Create a payable
// @Tags         payable
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPayableRequest  true  "Payable"
// @Success      201   {object}  domain.Payable
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /integrations/payable [post]
func (h *PayableHandler) Create(c echo.Context) error {
	var req createPayableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// Already checked by the isodate tag.
	emission, _ := parseDate(req.EmissionDate)

	p, err := h.service.Create(c.Request().Context(), actor(c), domain.Payable{
		ID:           req.ID,
		Value:        *req.Value,
		EmissionDate: emission,
		AssignorID:   req.AssignorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /integrations/payable.
//
// @Summary      List payables
// @Tags         payable
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Payable
// @Failure      401  {object}  errorResponse
// @Router       /integrations/payable [get]
func (h *PayableHandler) List(c echo.Context) error {
	list, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /integrations/payable/:id.
//
// @Summary      Get a payable
// @Tags         payable
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payable id"
// @Success      200  {object}  domain.Payable
// @Failure      404  {object}  errorResponse
// @Router       /integrations/payable/{id} [get]
func (h *PayableHandler) Get(c echo.Context) error {
	p, err := h.service.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PATCH /integrations/payable/:id.
//
// @Summary      Update a payable
// @Tags         payable
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Payable id"
// @Param        body  body      updatePayableRequest  true  "Fields to change"
// @Success      200   {object}  domain.Payable
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /integrations/payable/{id} [patch]
func (h *PayableHandler) Update(c echo.Context) error {
	var req updatePayableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := domain.PayablePatch{Value: req.Value, AssignorID: req.AssignorID}
	if req.EmissionDate != nil {
		t, _ := parseDate(*req.EmissionDate)
		patch.EmissionDate = &t
	}

	p, err := h.service.Update(c.Request().Context(), actor(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /integrations/payable/:id and returns the removed record.
//
// @Summary      Delete a payable
// @Tags         payable
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payable id"
// @Success      200  {object}  domain.Payable
// @Failure      404  {object}  errorResponse
// @Router       /integrations/payable/{id} [delete]
func (h *PayableHandler) Delete(c echo.Context) error {
	p, err := h.service.Remove(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
