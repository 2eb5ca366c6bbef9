package constants

// Имя exchange для жизненного цикла объявлений
const (
	CatalogExchange = "catalog_events"
)

// Ключи маршрутизации
const (
	RoutingKeyListingCreated = "catalog.listing.created"
	RoutingKeyListingUpdated = "catalog.listing.updated"
	RoutingKeyListingDeleted = "catalog.listing.deleted"
)
