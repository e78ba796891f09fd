package dto

import "github.com/jhoicas/stockflow-api/internal/domain/entity"

// ProductFromEntity convierte un producto en su DTO de salida.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Category:   p.Category,
		Quantity:   p.Quantity,
		Price:      p.Price,
		Cost:       p.Cost,
		SupplierID: p.SupplierID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ProductRef resumen de producto; nil si el producto ya no existe.
func ProductRef(p *entity.Product) *ProductRefDTO {
	if p == nil {
		return nil
	}
	return &ProductRefDTO{ID: p.ID, Name: p.Name, SKU: p.SKU}
}

// SupplierFromEntity convierte un proveedor en su DTO de salida.
func SupplierFromEntity(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Email:     s.Email,
		NIF:       s.NIF,
		Location:  s.Location,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ClientFromEntity convierte un cliente en su DTO de salida.
func ClientFromEntity(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		NIF:            c.NIF,
		Notes:          c.Notes,
		TotalPurchases: c.TotalPurchases,
		TotalQuantity:  c.TotalQuantity,
		LastPurchaseAt: c.LastPurchaseAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ClientRef resumen de cliente; nil si no existe.
func ClientRef(c *entity.Client) *ClientRefDTO {
	if c == nil {
		return nil
	}
	return &ClientRefDTO{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

// MovementFromDetail convierte un movimiento con sus resúmenes en DTO.
func MovementFromDetail(m *entity.MovementDetail) MovementResponse {
	out := MovementResponse{
		ID:              m.ID,
		Type:            m.Type,
		Product:         ProductRefDTO{ID: m.ProductID, Name: m.ProductName, SKU: m.ProductSKU},
		Quantity:        m.Quantity,
		Location:        m.Location,
		Responsible:     m.Responsible,
		TransportType:   m.TransportType,
		Description:     m.Description,
		PriceAtMovement: m.PriceAtMovement,
		CurrentStock:    m.CurrentStock,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.ClientID != nil {
		out.Client = &ClientRefDTO{ID: *m.ClientID, Name: m.ClientName, Email: m.ClientEmail}
	}
	if m.TransportID != nil {
		out.Transport = &TransportRefDTO{
			ID:     *m.TransportID,
			Type:   m.TransportKind,
			Status: m.TransportStatus,
			Driver: m.TransportDriver,
		}
	}
	return out
}

// LogFromEntity convierte una entrada de auditoría en DTO.
func LogFromEntity(l *entity.Log) LogResponse {
	return LogResponse{
		ID:          l.ID,
		Action:      l.Action,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Details:     l.Details,
		Timestamp:   l.Timestamp,
	}
}
