package strip

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidTable indicates a user-supplied language table failed schema
// validation.
var ErrInvalidTable = errors.New("invalid language table")

// tableSchema validates user-supplied language table files. Keys are file
// extensions; values describe that language's comment markers.
const tableSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "patternProperties": {
    "^\\.[A-Za-z0-9_+-]+$": {
      "type": "object",
      "properties": {
        "line_markers": {
          "type": "array",
          "items": {"type": "string", "minLength": 1}
        },
        "blocks": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "open": {"type": "string", "minLength": 1},
              "close": {"type": "string", "minLength": 1}
            },
            "required": ["open", "close"],
            "additionalProperties": false
          }
        },
        "quotes": {"type": "string"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// Table maps file extensions to comment-syntax rules for the Pattern
// Remover. Adding a language means adding a table entry, not new removal
// logic.
type Table struct {
	entries map[string]Rules
}

// NewTable creates a table seeded with the builtin languages.
func NewTable() *Table {
	return &Table{entries: builtinRules()}
}

// Lookup returns the rules for an extension.
func (t *Table) Lookup(ext string) (Rules, bool) {
	rules, ok := t.entries[normalizeExt(ext)]

	return rules, ok
}

// Merge adds or overrides entries. User entries win over builtins.
func (t *Table) Merge(entries map[string]Rules) {
	for ext, rules := range entries {
		key := normalizeExt(ext)
		if key == "" {
			continue
		}

		t.entries[key] = rules
	}
}

// LoadTableFile reads a JSON language table, validates it against the
// embedded schema, and returns its entries.
func LoadTableFile(path string) (map[string]Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language table: %w", err)
	}

	return ParseTable(data)
}

// ParseTable validates and decodes language table JSON.
func ParseTable(data []byte) (map[string]Rules, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(tableSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate language table: %w", err)
	}

	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, issue := range result.Errors() {
			issues = append(issues, issue.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, strings.Join(issues, "; "))
	}

	var entries map[string]Rules

	unmarshalErr := json.Unmarshal(data, &entries)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("decode language table: %w", unmarshalErr)
	}

	return entries, nil
}
