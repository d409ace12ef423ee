package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Offers API",
        "description": "Read-only search over scholarship offers",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Offers", "description": "Scholarship offer search"},
        {"name": "Observability", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Offer store unreachable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Metrics summary",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/offers": {
            "get": {
                "tags": ["Offers"],
                "summary": "Search scholarship offers",
                "description": "Filters, sorts, paginates and projects offers. Prices are formatted as pt-BR reais.",
                "parameters": [
                    {"name": "kind", "in": "query", "type": "string", "description": "Modality (presencial, ead)"},
                    {"name": "level", "in": "query", "type": "string", "description": "Academic level (bacharelado, tecnologo, licenciatura)"},
                    {"name": "minPrice", "in": "query", "type": "number", "description": "Lower bound of offeredPrice, inclusive"},
                    {"name": "maxPrice", "in": "query", "type": "number", "description": "Upper bound of offeredPrice, inclusive"},
                    {"name": "courseName", "in": "query", "type": "string", "description": "Case-insensitive course name fragment"},
                    {"name": "sortBy", "in": "query", "type": "string", "enum": ["courseName", "offeredPrice", "rating"]},
                    {"name": "orderBy", "in": "query", "type": "string", "enum": ["ASC", "DESC"], "default": "ASC"},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1, "default": 1},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "default": 10},
                    {"name": "fields", "in": "query", "type": "string", "description": "Comma separated subset of courseName, rating, fullPrice, offeredPrice, discountPercentage, kind, level, iesLogo, iesName"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OfferPage"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Offer store failure", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Offer": {
            "type": "object",
            "properties": {
                "courseName": {"type": "string", "example": "Medicina"},
                "rating": {"type": "number", "example": 4.8},
                "fullPrice": {"type": "string", "example": "R$ 1.200,00"},
                "offeredPrice": {"type": "string", "example": "R$ 876,00"},
                "discountPercentage": {"type": "string", "example": "27%"},
                "kind": {"type": "string", "example": "Presencial 🏫"},
                "level": {"type": "string", "example": "Graduação (bacharelado) 🎓"},
                "iesLogo": {"type": "string"},
                "iesName": {"type": "string"}
            }
        },
        "PageMetadata": {
            "type": "object",
            "properties": {
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "currentPage": {"type": "integer"},
                "itemsPerPage": {"type": "integer"}
            }
        },
        "OfferPage": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Offer"}
                },
                "metadata": {"$ref": "#/definitions/PageMetadata"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "INVALID_PARAMETER"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                }
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
