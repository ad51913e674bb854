package model

import (
	"fmt"
	"strings"

	"careerbuddy/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

// Minimal shape a job's answers must satisfy before rendering. The
// conversation flow normally guarantees this; the check catches documents
// assembled from stale or hand-edited rows.
const answersSchema = `{
	"type": "object",
	"properties": {
		"basics": {
			"type": "object",
			"properties": {
				"name": {"type": "string", "minLength": 1}
			},
			"required": ["name"]
		},
		"experiences": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"role": {"type": "string", "minLength": 1},
					"company": {"type": "string", "minLength": 1}
				},
				"required": ["role", "company"]
			}
		}
	},
	"required": ["basics"]
}`

const revampSchema = `{
	"type": "object",
	"properties": {
		"revamp": {
			"type": "object",
			"properties": {
				"revamped_content": {"type": "string", "minLength": 1}
			},
			"required": ["revamped_content"]
		}
	},
	"required": ["revamp"]
}`

// ValidateAnswers checks the answers document against the schema for its
// document type.
func ValidateAnswers(dt domain.DocumentType, ans *domain.Answers) error {
	schema := answersSchema
	if dt == domain.DocRevamp {
		schema = revampSchema
	}

	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(ans),
	)
	if err != nil {
		return fmt.Errorf("validate answers: %w", err)
	}
	if res.Valid() {
		return nil
	}

	var msgs []string
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("answers invalid: %s", strings.Join(msgs, "; "))
}
