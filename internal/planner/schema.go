package planner

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// AvailabilitySchema is the JSON Schema for an Availability request body.
var AvailabilitySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"days": map[string]any{
			"type":        "array",
			"uniqueItems": true,
			"items": map[string]any{
				"type": "string",
				"enum": []any{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			},
			"description": "Weekdays the learner can practice",
		},
		"timeSlots": map[string]any{
			"type": "object",
			"propertyNames": map[string]any{
				"enum": []any{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			},
			"additionalProperties": map[string]any{
				"type":    "string",
				"pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},
			"description": "Preferred time of day per weekday",
		},
		"durationMinutes": map[string]any{
			"type": "integer",
			"enum": []any{15, 30, 45, 60},
		},
		"targetBand": map[string]any{
			"type":       "number",
			"minimum":    5,
			"maximum":    9,
			"multipleOf": 0.5,
		},
		"weaknesses": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
	},
	"required":             []any{"days", "durationMinutes", "targetBand"},
	"additionalProperties": false,
}

const availabilitySchemaURL = "schema://availability.json"

var compiledAvailability = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, so round-trip the Go map.
	b, err := json.Marshal(AvailabilitySchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(availabilitySchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(availabilitySchemaURL)
})

// DecodeAvailability parses and validates a JSON availability document.
// Schema and semantic failures are reported as *ValidationError.
func DecodeAvailability(raw []byte) (Availability, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Availability{}, &ValidationError{Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}

	schema, err := compiledAvailability()
	if err != nil {
		return Availability{}, fmt.Errorf("compile availability schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Availability{}, &ValidationError{Problems: []string{err.Error()}}
	}

	var a Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		return Availability{}, &ValidationError{Problems: []string{err.Error()}}
	}
	if a.Weaknesses == nil {
		a.Weaknesses = []string{}
	}
	if err := a.Validate(); err != nil {
		return Availability{}, err
	}
	return a, nil
}
