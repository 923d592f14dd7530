// Package schemas содержит JSON-схемы контрактов сервиса.
package schemas

import "embed"

// SchemasFS - events/* описывают сообщения в брокер, api/* - ответы внешних REST-сервисов.
//
//go:embed events api
var SchemasFS embed.FS
