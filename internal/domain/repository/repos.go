package repository

// Repos agrupa los repositorios atados a una misma transacción (o al pool).
type Repos struct {
	Products   ProductRepository
	Suppliers  SupplierRepository
	Clients    ClientRepository
	Movements  StockMovementRepository
	Transports TransportRepository
	Orders     PurchaseOrderRepository
	Logs       LogRepository
}
