// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analytics/completion/recent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Completion of the current ISO week and the four before it, oldest first.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Recent completion trend",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.WeeklyCompletion"}}
                    }
                }
            }
        },
        "/analytics/completion/{week}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Share of the expected effort logged in the given week.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Weekly completion",
                "parameters": [
                    {"type": "integer", "description": "ISO week number", "name": "week", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CompletionReport"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/analytics/habits/{id}/performance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Per-effort performance of one habit and its average.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Habit performance",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HabitPerformanceReport"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/analytics/yearly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Habits of the current year ranked by their share of the delivered effort.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Yearly ranking",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/http.contributionResponse"}}
                    }
                }
            }
        },
        "/analytics/goals/week/{week}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Effort points logged in the given week per goal and their share of the week's total.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Weekly effort per goal",
                "parameters": [
                    {"type": "integer", "description": "ISO week number", "name": "week", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.GoalWeeklyStatistics"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.CompletionReport": {
            "type": "object",
            "properties": {"completion_percentage": {"type": "number"}}
        },
        "domain.WeeklyCompletion": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "completion_percentage": {"type": "number"},
                "difference": {"type": "number"}
            }
        },
        "domain.WeeklyPerformance": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "performance_percentage": {"type": "number"}
            }
        },
        "domain.HabitPerformanceReport": {
            "type": "object",
            "properties": {
                "performance_data": {"type": "array", "items": {"$ref": "#/definitions/domain.WeeklyPerformance"}},
                "average_performance_percentage": {"type": "number"}
            }
        },
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "objective_id": {"type": "string"},
                "name": {"type": "string"},
                "starting_week": {"type": "integer"},
                "ending_week": {"type": "integer"},
                "expected_effort": {"type": "integer"},
                "year": {"type": "integer"},
                "color": {"type": "string"},
                "status": {"type": "string", "enum": ["open", "finished"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "http.contributionResponse": {
            "type": "object",
            "properties": {
                "habit": {"$ref": "#/definitions/domain.Habit"},
                "performance_percentage": {"type": "number"},
                "contribution_percentage": {"type": "number"}
            }
        },
        "domain.GoalWeeklyPoints": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "total_points": {"type": "integer"},
                "total_percentage": {"type": "number"}
            }
        },
        "domain.GoalWeeklyStatistics": {
            "type": "object",
            "properties": {
                "total_effort_points": {"type": "integer"},
                "goals": {"type": "array", "items": {"$ref": "#/definitions/domain.GoalWeeklyPoints"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Goals API",
	Description:      "Goal tracking and weekly performance analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
