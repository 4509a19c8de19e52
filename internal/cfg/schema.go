package cfg

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaJSON describes exactly the configuration shapes recognized by §6 of
// the specification: output_modules.{BindingsOutputModule,
// JavaScriptStubOutputModule}, classes.<name>.{name,members}, and
// bulk_renames.<category>. Grounded on registry/service.go's
// validatePayloadJSONAgainstSchema pattern in the teacher repo (compile once,
// validate the parsed document before using it).
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "output_modules": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "BindingsOutputModule": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "max_declarations_per_file": {"type": "integer", "minimum": 0}
          }
        },
        "JavaScriptStubOutputModule": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "header": {"type": "string"}
          }
        }
      }
    },
    "classes": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string"},
          "members": {
            "type": "object",
            "additionalProperties": {
              "type": "object",
              "additionalProperties": false,
              "properties": {
                "skip": {"type": "boolean"},
                "name": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "bulk_renames": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {
          "type": "object",
          "additionalProperties": false,
          "required": ["regex", "replace"],
          "properties": {
            "regex": {"type": "string"},
            "replace": {"type": "string"}
          }
        }
      }
    }
  }
}`

var (
	schemaOnce    sync.Once
	compiledSchm  *jsonschema.Schema
	compileSchErr error
)

// compiledSchema compiles schemaJSON exactly once and caches the result.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := unmarshalJSON([]byte(schemaJSON), &doc); err != nil {
			compileSchErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("cppbind-config.schema.json", doc); err != nil {
			compileSchErr = err
			return
		}
		compiledSchm, compileSchErr = c.Compile("cppbind-config.schema.json")
	})
	return compiledSchm, compileSchErr
}
