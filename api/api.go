// Package api embeds the OpenAPI document served at /openapi.json.
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPI []byte
