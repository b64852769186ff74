package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/caja-api/internal/application/dto"
	"github.com/jhoicas/caja-api/internal/application/till"
	"github.com/shopspring/decimal"
)

// TillHandler expone la caja: carrito en curso y cobro.
// Todas las mutaciones responden con la foto actualizada del carrito.
type TillHandler struct {
	till *till.Till
}

// NewTillHandler construye el handler.
func NewTillHandler(t *till.Till) *TillHandler {
	return &TillHandler{till: t}
}

// Cart godoc
// @Summary      Carrito en curso
// @Tags         till
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/till/cart [get]
func (h *TillHandler) Cart(c *fiber.Ctx) error {
	return c.JSON(toCartResponse(h.till.Snapshot()))
}

// Scan godoc
// @Summary      Escanear producto (suma una unidad o la cantidad indicada)
// @Tags         till
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Código de barras"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/till/scan [post]
func (h *TillHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	qty := decimal.NewFromInt(1)
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if _, err := h.till.AddProduct(c.UserContext(), in.Barcode, qty); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toCartResponse(h.till.Snapshot()))
}

// SetQuantity godoc
// @Summary      Fijar cantidad de una línea (0 la elimina)
// @Tags         till
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id  path  string                  true  "ID del producto"
// @Param        body        body  dto.SetQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/till/items/{product_id} [put]
func (h *TillHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.till.SetQuantity(c.Params("product_id"), in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toCartResponse(h.till.Snapshot()))
}

// Adjust godoc
// @Summary      Sumar o restar a la cantidad de una línea
// @Tags         till
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id  path  string             true  "ID del producto"
// @Param        body        body  dto.AdjustRequest  true  "Delta"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/till/items/{product_id}/adjust [post]
func (h *TillHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.till.Adjust(c.Params("product_id"), in.Delta); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toCartResponse(h.till.Snapshot()))
}

// Remove godoc
// @Summary      Quitar una línea del carrito
// @Tags         till
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/till/items/{product_id} [delete]
func (h *TillHandler) Remove(c *fiber.Ctx) error {
	h.till.Remove(c.Params("product_id"))
	return c.JSON(toCartResponse(h.till.Snapshot()))
}

// Cancel godoc
// @Summary      Cancelar la venta en curso (vacía el carrito)
// @Tags         till
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/till/cart [delete]
func (h *TillHandler) Cancel(c *fiber.Ctx) error {
	h.till.Cancel()
	return c.JSON(toCartResponse(h.till.Snapshot()))
}

// Checkout godoc
// @Summary      Cobrar y confirmar la venta
// @Tags         till
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Medio de pago"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/till/checkout [post]
func (h *TillHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.till.Checkout(c.UserContext(), till.CheckoutInput{
		PaymentMethod:  in.PaymentMethod,
		ReceivedAmount: in.ReceivedAmount,
		Comment:        in.Comment,
		CashierID:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{Sale: toSaleResponse(res.Sale), Change: res.Change})
}
