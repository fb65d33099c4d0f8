package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Concesionarios-api/internal/application/dto"
	"github.com/jhoicas/Concesionarios-api/internal/application/usecase"
	"github.com/jhoicas/Concesionarios-api/internal/domain"
)

// DealershipHandler maneja las peticiones HTTP para Dealership (protegido).
type DealershipHandler struct {
	uc *usecase.DealershipUseCase
}

// NewDealershipHandler construye el handler.
func NewDealershipHandler(uc *usecase.DealershipUseCase) *DealershipHandler {
	return &DealershipHandler{uc: uc}
}

// List godoc
// @Summary      Listar concesionarios
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DealershipListResponse
// @Router       /api/dealerships [get]
func (h *DealershipHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener concesionario por ID
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del concesionario"
// @Success      200  {object}  dto.DealershipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id} [get]
func (h *DealershipHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "MISSING_ID", "id numérico requerido")
	}
	out, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear concesionario
// @Tags         dealerships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealershipRequest  true  "Datos del concesionario"
// @Success      201   {object}  dto.DealershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dealerships [post]
func (h *DealershipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealershipRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.UserID <= 0 {
		return badRequest(c, "VALIDATION", "user_id es requerido")
	}
	var errs []fieldError
	errs = checkName(in.Name, true, errs)
	errs = checkAddress(in.Address, true, errs)
	errs = checkCity(in.City, true, errs)
	errs = checkState(in.State, true, errs)
	errs = checkZip(in.ZipCode, true, errs)
	errs = checkPhone(in.Phone, true, errs)
	errs = checkEmail(in.Email, true, errs)
	errs = checkType(in.Type, errs)
	if len(errs) > 0 {
		return validationError(c, errs)
	}

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return badRequest(c, "VALIDATION", "user_id no existe")
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualización parcial de un concesionario
// @Tags         dealerships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del concesionario"
// @Param        body  body  dto.UpdateDealershipRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DealershipResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id} [put]
func (h *DealershipHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "MISSING_ID", "id numérico requerido")
	}
	var in dto.UpdateDealershipRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	var errs []fieldError
	if in.Name != nil {
		errs = checkName(*in.Name, true, errs)
	}
	if in.Address != nil {
		errs = checkAddress(*in.Address, true, errs)
	}
	if in.City != nil {
		errs = checkCity(*in.City, true, errs)
	}
	if in.State != nil {
		errs = checkState(*in.State, true, errs)
	}
	if in.ZipCode != nil {
		errs = checkZip(*in.ZipCode, true, errs)
	}
	if in.Phone != nil {
		errs = checkPhone(*in.Phone, true, errs)
	}
	if in.Email != nil {
		errs = checkEmail(*in.Email, true, errs)
	}
	if in.Type != nil {
		errs = checkType(*in.Type, errs)
	}
	if len(errs) > 0 {
		return validationError(c, errs)
	}

	out, err := h.uc.Update(c.Context(), int64(id), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar concesionario
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del concesionario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id} [delete]
func (h *DealershipHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "MISSING_ID", "id numérico requerido")
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "concesionario borrado"})
}

// Search godoc
// @Summary      Buscar concesionarios por texto libre
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar (name, city, state, email)"
// @Success      200  {array}  dto.DealershipResponse
// @Router       /api/dealerships/search [get]
func (h *DealershipHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Metrics godoc
// @Summary      Métricas derivadas de un concesionario
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del concesionario"
// @Success      200  {object}  dto.MetricsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id}/metrics [get]
func (h *DealershipHandler) Metrics(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "MISSING_ID", "id numérico requerido")
	}
	out, err := h.uc.Metrics(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// AssignUser godoc
// @Summary      Asignar un usuario al concesionario
// @Tags         dealerships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del concesionario"
// @Param        body  body  dto.AssignUserRequest  true  "Usuario a asignar"
// @Success      200   {object}  dto.DealershipResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id}/users [post]
func (h *DealershipHandler) AssignUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "MISSING_ID", "id numérico requerido")
	}
	var in dto.AssignUserRequest
	if err := c.BodyParser(&in); err != nil || in.UserID <= 0 {
		return badRequest(c, "VALIDATION", "user_id es requerido")
	}
	out, err := h.uc.AssignUser(c.Context(), int64(id), in.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return notFound(c)
		case errors.Is(err, domain.ErrUserNotFound):
			return badRequest(c, "VALIDATION", "user_id no existe")
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// RemoveUser godoc
// @Summary      Retirar un usuario del concesionario
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id      path  int  true  "ID del concesionario"
// @Param        userId  path  int  true  "ID del usuario"
// @Success      200     {object}  dto.DealershipResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id}/users/{userId} [delete]
func (h *DealershipHandler) RemoveUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "MISSING_ID", "id numérico requerido")
	}
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return badRequest(c, "VALIDATION", "userId numérico requerido")
	}
	out, err := h.uc.RemoveUser(c.Context(), int64(id), int64(userID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ByUser godoc
// @Summary      Concesionarios con un usuario asignado
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        userId  path  int  true  "ID del usuario"
// @Success      200     {array}  dto.DealershipResponse
// @Router       /api/dealerships/by-user/{userId} [get]
func (h *DealershipHandler) ByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return badRequest(c, "VALIDATION", "userId numérico requerido")
	}
	out, err := h.uc.FindByUser(c.Context(), int64(userID))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ByType godoc
// @Summary      Concesionarios por tipo
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "Tipo exacto"
// @Success      200   {array}  dto.DealershipResponse
// @Router       /api/dealerships/by-type/{type} [get]
func (h *DealershipHandler) ByType(c *fiber.Ctx) error {
	out, err := h.uc.FindByType(c.Context(), c.Params("type"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ByDevStatus godoc
// @Summary      Concesionarios por estado de desarrollo
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        status  path  string  true  "Estado exacto (not_started, in_progress, completed, on_hold)"
// @Success      200     {array}  dto.DealershipResponse
// @Router       /api/dealerships/by-dev-status/{status} [get]
func (h *DealershipHandler) ByDevStatus(c *fiber.Ctx) error {
	out, err := h.uc.FindByDevStatus(c.Context(), c.Params("status"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ── respuestas de error ───────────────────────────────────────────────────────

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "concesionario no encontrado"})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func validationError(c *fiber.Ctx, errs []fieldError) error {
	// Se reporta el primer campo inválido, como hace el resto de la API
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: errs[0].field + ": " + errs[0].message,
	})
}
