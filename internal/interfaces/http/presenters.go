package http

import (
	"github.com/jhoicas/caja-api/internal/application/dto"
	"github.com/jhoicas/caja-api/internal/application/till"
	"github.com/jhoicas/caja-api/internal/domain/entity"
)

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		PaymentMethod: s.PaymentMethod,
		GrandTotal:    s.GrandTotal,
		Comment:       s.Comment,
		CashierID:     s.CashierID,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total(),
		})
	}
	return out
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Reference: m.Reference,
		Notes:     m.Notes,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}

func toCartResponse(s till.Snapshot) dto.CartResponse {
	out := dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(s.Lines)), GrandTotal: s.GrandTotal}
	for _, li := range s.Lines {
		out.Lines = append(out.Lines, dto.CartLineResponse{
			ProductID: li.ProductID,
			Barcode:   li.Barcode,
			Name:      li.Name,
			UnitType:  li.UnitType,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Total:     li.Total(),
		})
	}
	return out
}
