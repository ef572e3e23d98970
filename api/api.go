// Package api embeds the OpenAPI document of the HTTP surface. It is used to
// validate incoming requests and to serve the swagger UI.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
