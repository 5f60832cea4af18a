package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Next Task App API",
        "description": "Task, event and test tracking for a school class",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Enrollment and session management"},
        {"name": "Users", "description": "Profile and settings"},
        {"name": "Tasks", "description": "Assignments with deadlines"},
        {"name": "Events", "description": "Class events"},
        {"name": "Tests", "description": "Exams and notification toggles"},
        {"name": "Calendar", "description": "Month grid"},
        {"name": "Dashboard", "description": "Upcoming items summary"},
        {"name": "Changes", "description": "Realtime change feed"}
    ],
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Enroll a new user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Student id or email already taken"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a token pair",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Expired or revoked refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the caller's sessions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/me": {
            "get": {
                "tags": ["Users"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/student-id": {
            "put": {
                "tags": ["Users"],
                "summary": "Change the caller's student id",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentIDRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Student id already taken"}
                }
            }
        },
        "/me/notification-days": {
            "put": {
                "tags": ["Users"],
                "summary": "Change the reminder window",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateNotificationDaysRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/by-student-id/{sid}": {
            "get": {
                "tags": ["Users"],
                "summary": "Look up a user by student id",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "sid", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks visible to the caller",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "important", "in": "query", "type": "boolean"},
                    {"name": "completed", "in": "query", "type": "boolean"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["NO_DEADLINE", "COMPLETED", "EXPIRED", "URGENT_DUE_TODAY", "DUE_SOON", "NORMAL"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not visible to the caller"}
                }
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task (creator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the creator"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task (creator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Not the creator"}
                }
            }
        },
        "/tasks/{id}/status": {
            "put": {
                "tags": ["Tasks"],
                "summary": "Toggle per-user completion",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tasks/export": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Export the caller's task list",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events visible to the caller",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event (creator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event (creator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tests": {
            "get": {
                "tags": ["Tests"],
                "summary": "List tests with the caller's notification toggles",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tests"],
                "summary": "Create test",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tests/{id}": {
            "get": {
                "tags": ["Tests"],
                "summary": "Get test",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Tests"],
                "summary": "Update test (creator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Tests"],
                "summary": "Delete test (creator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tests/{id}/notification": {
            "put": {
                "tags": ["Tests"],
                "summary": "Toggle per-user notification",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleNotificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month grid of 42 day cells",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "integer"},
                    {"name": "tz", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid year or month"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Upcoming tasks, events and tests for the caller",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/changes": {
            "get": {
                "tags": ["Changes"],
                "summary": "Server-sent event stream of change envelopes",
                "security": [{"BearerAuth": []}],
                "produces": ["text/event-stream"],
                "responses": {
                    "200": {"description": "Stream"},
                    "404": {"description": "Realtime feed disabled"}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Point-in-time runtime metrics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"}
            },
            "required": ["student_id", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "UpdateStudentIDRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"}
            },
            "required": ["student_id"]
        },
        "UpdateNotificationDaysRequest": {
            "type": "object",
            "properties": {
                "notification_days": {"type": "integer"}
            },
            "required": ["notification_days"]
        },
        "CreateTaskRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "submission_method": {"type": "string", "enum": ["GOOGLE_CLASSROOM", "TEAMS", "MOODLE", "PAPER", "OTHER"]},
                "is_important": {"type": "boolean"},
                "is_for_all": {"type": "boolean"},
                "assigned_to": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["subject", "title", "submission_method"]
        },
        "UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "submission_method": {"type": "string", "enum": ["GOOGLE_CLASSROOM", "TEAMS", "MOODLE", "PAPER", "OTHER"]},
                "is_important": {"type": "boolean"},
                "is_for_all": {"type": "boolean"},
                "assigned_to": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["subject", "title", "submission_method"]
        },
        "ToggleStatusRequest": {
            "type": "object",
            "properties": {
                "is_completed": {"type": "boolean"}
            },
            "required": ["is_completed"]
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "venue": {"type": "string"},
                "duration": {"type": "string"},
                "date_time": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "items": {"type": "string"},
                "is_important": {"type": "boolean"},
                "is_for_all": {"type": "boolean"},
                "assigned_to": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["title", "date_time"]
        },
        "UpdateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "venue": {"type": "string"},
                "duration": {"type": "string"},
                "date_time": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "items": {"type": "string"},
                "is_important": {"type": "boolean"},
                "is_for_all": {"type": "boolean"},
                "assigned_to": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["title", "date_time"]
        },
        "CreateTestRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "test_date": {"type": "string", "format": "date-time"},
                "scope": {"type": "string"},
                "related_task_id": {"type": "string"},
                "teacher": {"type": "string"},
                "is_important": {"type": "boolean"}
            },
            "required": ["subject", "test_date", "scope"]
        },
        "UpdateTestRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "test_date": {"type": "string", "format": "date-time"},
                "scope": {"type": "string"},
                "related_task_id": {"type": "string"},
                "teacher": {"type": "string"},
                "is_important": {"type": "boolean"}
            },
            "required": ["subject", "test_date", "scope"]
        },
        "ToggleNotificationRequest": {
            "type": "object",
            "properties": {
                "is_notification_enabled": {"type": "boolean"}
            },
            "required": ["is_notification_enabled"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
