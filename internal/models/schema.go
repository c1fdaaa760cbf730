package models

import "github.com/invopop/jsonschema"

// AnalysisSchema returns the JSON schema of AnalysisResult for client integrators.
func AnalysisSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&AnalysisResult{})
}
