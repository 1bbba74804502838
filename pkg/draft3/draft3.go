// Package draft3 defines the keywords used by JSON Schema draft 3.
//
// Importing this package registers the draft 3 vocabulary as the
// default, so that schemas decode against it.
package draft3

import (
	"github.com/schemata/draft3/pkg/types"
)

// SchemaID is the URI identifying the draft 3 schema language.
const SchemaID = "http://json-schema.org/draft-03/schema"

// Vocabulary describes the draft 3 keyword set.
var Vocabulary = &types.Vocabulary{}

func init() {
	Vocabulary.Name = "draft3"
	Vocabulary.Schema = SchemaID
	Vocabulary.Keywords = keywordMap
	Vocabulary.Cmp = keywordCmp
	Vocabulary.Resolve = resolveSchema

	types.RegisterVocabulary(Vocabulary, true)
}
