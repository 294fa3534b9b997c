package ngn

import (
	"nursethink/models"

	"github.com/invopop/jsonschema"
)

// CaseSchema describes the Case JSON exchanged with the model.
func CaseSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&models.Case{})
	schema.Title = "NGN case"
	schema.Description = "A 3-stage NGN case progression."
	return schema
}
