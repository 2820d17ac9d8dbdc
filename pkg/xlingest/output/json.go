// Package output renders ingestion results for people and machines.
package output

import (
	"encoding/json"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// ToJSON serializes an ingestion result.
func ToJSON(res *models.IngestResult, pretty bool) ([]byte, error) {
	return marshal(res, pretty)
}

// DefinitionsToJSON serializes spreadsheet definitions.
func DefinitionsToJSON(defs []models.SpreadsheetDefinition, pretty bool) ([]byte, error) {
	return marshal(defs, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
