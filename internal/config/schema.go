package config

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// checklistSchema is the JSON Schema for checklist documents. It rejects
// malformed shapes (a requirement that is neither a bare string nor a
// single-key mapping, a waiver entry without a name) before any struct
// decoding or artifact parsing happens.
const checklistSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["checklist", "checks"],
  "properties": {
    "checklist": {
      "type": "object",
      "required": ["name", "version"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "version": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "min_engine": {"type": "string"}
      },
      "additionalProperties": false
    },
    "checks": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/$defs/check"}
    }
  },
  "additionalProperties": false,
  "$defs": {
    "scalar": {
      "oneOf": [
        {"type": "string"},
        {"type": "number"},
        {"type": "boolean"}
      ]
    },
    "check": {
      "type": "object",
      "required": ["id", "name", "sources"],
      "properties": {
        "id": {"type": "string", "pattern": "^[a-zA-Z0-9_-]+$"},
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "severity": {"enum": ["low", "medium", "high", "critical"]},
        "tags": {"type": "array", "items": {"type": "string"}},
        "shape": {"enum": ["boolean", "pattern"]},
        "sources": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["label", "path"],
            "properties": {
              "label": {"type": "string", "minLength": 1},
              "path": {"type": "string", "minLength": 1},
              "required": {"type": "boolean"}
            },
            "additionalProperties": false
          }
        },
        "extractors": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "pattern"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "pattern": {"type": "string", "minLength": 1},
              "key_group": {"type": "integer", "minimum": 1},
              "value_group": {"type": "integer", "minimum": 0},
              "list_key": {"type": "string"}
            },
            "additionalProperties": false
          }
        },
        "requirements": {
          "type": "array",
          "items": {
            "oneOf": [
              {"type": "string", "minLength": 1},
              {
                "type": "object",
                "minProperties": 1,
                "maxProperties": 1,
                "additionalProperties": {
                  "oneOf": [
                    {"$ref": "#/$defs/scalar"},
                    {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/scalar"}}
                  ]
                }
              }
            ]
          }
        },
        "waivers": {
          "type": "object",
          "properties": {
            "value": {"type": "integer"},
            "notes": {"type": "array", "items": {"type": "string"}},
            "entries": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": {"type": "string", "minLength": 1},
                  "reason": {"type": "string"}
                },
                "additionalProperties": false
              }
            }
          },
          "additionalProperties": false
        },
        "messages": {
          "type": "object",
          "properties": {
            "found": {"type": "string"},
            "missing": {"type": "string"},
            "absent": {"type": "string"}
          },
          "additionalProperties": false
        }
      },
      "additionalProperties": false
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("checklist.schema.json", checklistSchema)

// ValidateSchema validates a raw checklist document against the schema.
func ValidateSchema(doc []byte) error {
	jsonDoc, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return fmt.Errorf("checklist is not valid YAML: %w", err)
	}

	var value interface{}
	if err := json.Unmarshal(jsonDoc, &value); err != nil {
		return fmt.Errorf("checklist is not valid YAML: %w", err)
	}

	if err := compiledSchema.Validate(value); err != nil {
		return fmt.Errorf("checklist schema validation failed: %w", err)
	}
	return nil
}
