package schemas

import "embed"

// SchemasFS содержит JSON-схемы событий сервиса
//
//go:embed events
var SchemasFS embed.FS
