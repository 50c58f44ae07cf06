package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Conflict Checker API",
        "description": "Detects instructor, room, constraint group and date range conflicts in course schedules",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Conflicts", "description": "Schedule conflict checks"},
        {"name": "Operations", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/conflicts/check": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Check a schedule snapshot for conflicts",
                "description": "Runs the instructor, room, constraint group and date range checks over the submitted meetings.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckConflictsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConflictReportEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Too many records", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/terms/{termId}/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Check a stored term for conflicts",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "termId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConflictReportEnvelope"}},
                    "404": {"description": "Term not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/terms/{termId}/conflicts/constraints/{constraintId}": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Check one constraint group of a stored term",
                "description": "Ignored and unknown groups respond with 404.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "termId", "in": "path", "required": true, "type": "string"},
                    {"name": "constraintId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not checked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/terms/{termId}/constraints/cache": {
            "delete": {
                "tags": ["Conflicts"],
                "summary": "Drop cached constraint groups of a term",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "termId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "503": {"description": "Cache unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Instructor": {
            "type": "object",
            "required": ["lastName", "firstName"],
            "properties": {
                "lastName": {"type": "string"},
                "firstName": {"type": "string"}
            }
        },
        "MeetingRecord": {
            "type": "object",
            "required": ["courseCode"],
            "properties": {
                "id": {"type": "string"},
                "courseCode": {"type": "string", "example": "CS 121"},
                "section": {"type": "string"},
                "days": {"type": "string", "example": "MWF"},
                "startTime": {"type": "string", "example": "13:15"},
                "endTime": {"type": "string", "example": "14:30"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "room": {"type": "string"},
                "instructors": {"type": "array", "items": {"$ref": "#/definitions/Instructor"}}
            }
        },
        "ConstraintGroup": {
            "type": "object",
            "required": ["id", "codes", "priority"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "codes": {"type": "array", "items": {"type": "string"}},
                "priority": {"type": "string", "enum": ["PRIORITY", "NON_PRIORITY", "IGNORE"]}
            }
        },
        "CheckConflictsRequest": {
            "type": "object",
            "required": ["records"],
            "properties": {
                "records": {"type": "array", "items": {"$ref": "#/definitions/MeetingRecord"}},
                "constraints": {"type": "array", "items": {"$ref": "#/definitions/ConstraintGroup"}},
                "dateRecordIds": {"type": "array", "items": {"type": "string"}},
                "timeZone": {"type": "string", "example": "America/Los_Angeles"}
            }
        },
        "Cluster": {
            "type": "object",
            "properties": {
                "recordIds": {"type": "array", "items": {"type": "string"}},
                "meetings": {"type": "array", "items": {"type": "object"}}
            }
        },
        "GroupConflicts": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "clusters": {"type": "array", "items": {"$ref": "#/definitions/Cluster"}}
            }
        },
        "ConstraintConflicts": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "priority": {"type": "string"},
                "clusters": {"type": "array", "items": {"$ref": "#/definitions/Cluster"}}
            }
        },
        "ConflictReport": {
            "type": "object",
            "properties": {
                "checkId": {"type": "string"},
                "termId": {"type": "string"},
                "instructors": {"type": "array", "items": {"$ref": "#/definitions/GroupConflicts"}},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/GroupConflicts"}},
                "constraints": {"type": "array", "items": {"$ref": "#/definitions/ConstraintConflicts"}},
                "dates": {"type": "array", "items": {"$ref": "#/definitions/Cluster"}},
                "summary": {"type": "object"},
                "generatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "ConflictReportEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/ConflictReport"},
                "meta": {"type": "object"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
