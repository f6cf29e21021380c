// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/transcriptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "List transcriptions",
                "parameters": [
                    {"type": "integer", "description": "Number of records (default 10, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transcription.TranscriptionListResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Create a transcription",
                "parameters": [
                    {"description": "Transcript content", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/transcription.CreateTranscriptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transcription.TranscriptionResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}},
                    "500": {"description": "Summary generation failed", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}}
                }
            }
        },
        "/transcriptions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Get a transcription",
                "parameters": [
                    {"type": "string", "description": "Transcription ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transcription.TranscriptionDetailResponse"}},
                    "404": {"description": "Transcription not found", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}}
                }
            }
        },
        "/transcriptions/{id}/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Get or generate a summary",
                "parameters": [
                    {"type": "string", "description": "Transcription ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transcription.SummaryResponse"}},
                    "404": {"description": "Transcription not found", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}},
                    "500": {"description": "Summary generation failed", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}}
                }
            }
        },
        "/transcriptions/{id}/upload_audio": {
            "post": {
                "consumes": ["multipart/form-data", "application/json", "application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Upload a recording",
                "parameters": [
                    {"type": "string", "description": "Transcription ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Recording (webm)", "name": "audio", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transcription.TranscriptionResponse"}},
                    "404": {"description": "Transcription not found", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}},
                    "422": {"description": "No audio data provided", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}},
                    "500": {"description": "Transcription or summary failed", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}}
                }
            }
        },
        "/transcriptions/{id}/audio": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Get the archived recording",
                "parameters": [
                    {"type": "string", "description": "Transcription ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transcription.AudioURLResponse"}},
                    "404": {"description": "Transcription or audio not found", "schema": {"$ref": "#/definitions/transcription.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "transcription.CreateTranscriptionRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "maxLength": 100000},
                "transcription": {"$ref": "#/definitions/transcription.TranscriptionParams"}
            }
        },
        "transcription.TranscriptionParams": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "maxLength": 100000}
            }
        },
        "transcription.TranscriptionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "content": {"type": "string"},
                "summary": {"type": "string"},
                "status": {"type": "string", "enum": ["processing", "completed", "failed"]}
            }
        },
        "transcription.SummaryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "summary": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "transcription.TranscriptionDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "content": {"type": "string"},
                "summary": {"type": "string"},
                "status": {"type": "string"},
                "metadata": {"type": "object", "additionalProperties": true},
                "audio_key": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "transcription.TranscriptionListResponse": {
            "type": "object",
            "properties": {
                "transcriptions": {"type": "array", "items": {"$ref": "#/definitions/transcription.TranscriptionDetailResponse"}},
                "count": {"type": "integer"}
            }
        },
        "transcription.AudioURLResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "transcription.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Voice Transcriber API",
	Description:      "Records audio, transcribes it and summarizes the transcript.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
