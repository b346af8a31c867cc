package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/budgety/budgety-backend/docs"
)

// apiServer is an entry in the OpenAPI 3.0 servers list
type apiServer struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

var apiServers = []apiServer{
	{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
	{URL: "https://api.budgety.app/api/v1", Description: "Production"},
}

// ServeOpenAPI3Spec serves the generated Swagger 2.0 document rewritten as
// OpenAPI 3.0 so clients that only speak 3.x can consume it
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read swagger doc"})
	}

	var v2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &v2); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to parse swagger doc"})
	}

	spec := map[string]interface{}{
		"openapi": "3.0.3",
		"servers": apiServers,
	}
	if info, ok := v2["info"]; ok {
		spec["info"] = info
	}
	if paths, ok := v2["paths"].(map[string]interface{}); ok {
		spec["paths"] = rewriteNode(paths)
	}

	components := map[string]interface{}{}
	if secDefs, ok := v2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if defs, ok := v2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = rewriteNode(defs)
	}
	if len(components) > 0 {
		spec["components"] = components
	}

	return c.JSON(http.StatusOK, spec)
}

// rewriteNode walks the document, repointing $ref targets from #/definitions/
// to #/components/schemas/ and converting non-body parameters to the 3.0
// shape (type fields nested under "schema")
func rewriteNode(node interface{}) interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		if isParameter(v) && v["in"] != "body" {
			return rewriteParameter(v)
		}
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if key == "$ref" {
				if ref, ok := value.(string); ok {
					out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
					continue
				}
			}
			out[key] = rewriteNode(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteNode(item)
		}
		return out
	default:
		return node
	}
}

func isParameter(v map[string]interface{}) bool {
	_, hasIn := v["in"]
	_, hasName := v["name"]
	return hasIn && hasName
}

func rewriteParameter(param map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = rewriteNode(val)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}

	return out
}
