// Package validate checks decoded records against JSON schemas and reports every
// failing field at once.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
)

var ErrValidation = errors.New("validation failed")

// Issue is one failing field.
type Issue struct {
	Field       string
	Description string
}

func (i Issue) Error() string {
	return i.Field + ": " + i.Description
}

// ValidationError collects all issues found in one document.
type ValidationError struct {
	Model  string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.Error()
	}
	return fmt.Sprintf("%d validation error(s) for %s: %s", len(e.Issues), e.Model, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() []error {
	var err error
	for _, issue := range e.Issues {
		err = multierr.Append(err, issue)
	}
	return multierr.Errors(err)
}

const userSchema = `{
  "type": "object",
  "required": ["name", "age", "email", "favorite_fruits"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer"},
    "email": {"type": "string", "format": "email"},
    "bio": {"type": ["string", "null"], "maxLength": 300},
    "favorite_fruits": {"type": "array", "items": {"type": "string"}}
  }
}`

var userValidator = mustSchema(userSchema)

func mustSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return s
}

type User struct {
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Email          string   `json:"email"`
	Bio            *string  `json:"bio,omitempty"`
	FavoriteFruits []string `json:"favorite_fruits"`
}

// ParseUser validates data before decoding it.
func ParseUser(data []byte) (User, error) {
	if err := check("User", userValidator, gojsonschema.NewBytesLoader(data)); err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}

func (u User) Validate() error {
	return check("User", userValidator, gojsonschema.NewGoLoader(u))
}

func check(model string, schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) error {
	result, err := schema.Validate(doc)
	if err != nil {
		return &ValidationError{
			Model:  model,
			Issues: []Issue{{Field: "(root)", Description: err.Error()}},
		}
	}
	if result.Valid() {
		return nil
	}
	issues := make([]Issue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, Issue{Field: re.Field(), Description: re.Description()})
	}
	return &ValidationError{Model: model, Issues: issues}
}
