// Package docs registers the API document with swag so that echo-swagger
// can serve it on /swagger/*. The document is api/openapi.yaml converted to
// JSON at startup.
package docs

import (
	"encoding/json"

	"dispatch/api"

	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Title:            "Dispatch API",
	Description:      "Delivery confirmation pings and driver route management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  mustJSON(api.OpenAPI),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// JSON converts a YAML document to JSON.
func JSON(doc []byte) (string, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(doc, &obj); err != nil {
		return "", err
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func mustJSON(doc []byte) string {
	out, err := JSON(doc)
	if err != nil {
		panic("docs: embedded OpenAPI document is not valid YAML: " + err.Error())
	}
	return out
}
