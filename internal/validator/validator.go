// Package validator provides JSON schema validation for estimate requests.
//
// Validation happens at the HTTP boundary only; the metrics engine itself
// accepts whatever it is given and degrades quietly.
package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator validates estimate requests against embedded schemas.
type Validator struct {
	requestSchema *jsonschema.Schema
}

// ValidationError represents a single validation failure.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationResult holds the result of a validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// New creates a new validator with the embedded schemas compiled.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("agent.json", strings.NewReader(agentSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add agent schema: %w", err)
	}
	if err := compiler.AddResource("estimate_request.json", strings.NewReader(requestSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add request schema: %w", err)
	}

	requestSchema, err := compiler.Compile("estimate_request.json")
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}

	return &Validator{requestSchema: requestSchema}, nil
}

// ValidateRequest validates a decoded estimate request.
func (v *Validator) ValidateRequest(request map[string]interface{}) *ValidationResult {
	return v.validate(v.requestSchema, request)
}

// ValidateRequestJSON validates a JSON-encoded estimate request.
func (v *Validator) ValidateRequestJSON(data []byte) *ValidationResult {
	var request map[string]interface{}
	if err := json.Unmarshal(data, &request); err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Path: "$", Message: fmt.Sprintf("invalid JSON: %v", err)},
			},
		}
	}
	return v.ValidateRequest(request)
}

func (v *Validator) validate(schema *jsonschema.Schema, data interface{}) *ValidationResult {
	err := schema.Validate(data)
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	result := &ValidationResult{Valid: false}
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		result.Errors = extractErrors(verr)
	} else {
		result.Errors = []ValidationError{{Path: "$", Message: err.Error()}}
	}
	return result
}

// extractErrors recursively flattens validation error causes.
func extractErrors(verr *jsonschema.ValidationError) []ValidationError {
	var errors []ValidationError

	if verr.Message != "" {
		errors = append(errors, ValidationError{
			Path:    verr.InstanceLocation,
			Message: verr.Message,
		})
	}
	for _, cause := range verr.Causes {
		errors = append(errors, extractErrors(cause)...)
	}
	return errors
}

// Embedded JSON schemas

const agentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "agent.json",
  "title": "Workflow Agent",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1,
      "description": "Agent name, unique within the workflow"
    },
    "type": {
      "type": "string",
      "enum": ["research", "analysis", "writer", "reviewer", "custom"],
      "description": "Agent role"
    },
    "llm_config": {
      "type": "object",
      "properties": {
        "model": {"type": "string"},
        "temperature": {"type": "number", "minimum": 0, "maximum": 2},
        "max_tokens": {"type": "integer", "minimum": 1}
      }
    },
    "tavily_config": {
      "type": "object",
      "properties": {
        "search_api": {"type": "boolean"},
        "extract_api": {"type": "boolean"},
        "crawl_api": {"type": "boolean"},
        "map_api": {"type": "boolean"},
        "max_credits_per_agent": {"type": "integer", "minimum": 0}
      }
    },
    "timeout_seconds": {
      "type": "integer",
      "minimum": 0,
      "description": "Expected per-agent runtime budget"
    },
    "priority": {"type": "integer"},
    "depends_on": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Names of agents whose completion gates this agent"
    },
    "hitl_config": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "timeout_seconds": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

const requestSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "estimate_request.json",
  "title": "Estimate Request",
  "type": "object",
  "required": ["agents", "workflow"],
  "properties": {
    "name": {
      "type": "string",
      "description": "Optional label for the estimate history"
    },
    "agents": {
      "type": "array",
      "items": {"$ref": "agent.json"},
      "description": "Agents in the workflow; may be empty"
    },
    "workflow": {
      "type": "object",
      "properties": {
        "mode": {
          "type": "string",
          "enum": ["sequential", "parallel", "conditional", "graph"],
          "description": "Workflow execution mode"
        },
        "parallel_groups": {
          "type": "array",
          "items": {
            "type": "array",
            "items": {"type": "string"}
          },
          "description": "Positional agent index groups, executed group by group"
        },
        "max_concurrent_agents": {"type": "integer", "minimum": 1},
        "timeout_seconds": {"type": "integer", "minimum": 0},
        "graph_structure": {
          "type": "object",
          "properties": {
            "edges": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["from", "to"],
                "properties": {
                  "from": {"type": "string"},
                  "to": {"type": "string"}
                }
              }
            }
          }
        },
        "completion_strategy": {"type": "string"}
      }
    },
    "skip_validation": {"type": "boolean"}
  }
}`
