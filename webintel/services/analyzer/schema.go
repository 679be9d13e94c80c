package analyzer

import (
	"encoding/json"

	"webintel/webintel/types"

	"github.com/invopop/jsonschema"
)

// businessSchema is the JSON schema embedded in the analysis prompt.
var businessSchema = GenerateSchema[types.BusinessDetails]()

// GenerateSchema reflects T into an inline JSON schema document.
func GenerateSchema[T any]() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var zero T
	schema := reflector.Reflect(zero)
	schema.Version = ""

	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		panic("analyzer: schema generation failed: " + err.Error())
	}
	return string(b)
}
