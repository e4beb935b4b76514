package projectjson

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

func TestReadProject_FullDocument(t *testing.T) {
	doc := `{
	  "tables": [
	    {
	      "id": "products",
	      "name": "Products",
	      "generation": { "mode": "fixed", "fixedCount": 4 },
	      "columns": [
	        { "id": "products.id", "name": "id", "type": "text", "strategy": "pattern", "pattern": "P-###" },
	        { "id": "products.name", "name": "name", "type": "text", "sampleValues": ["Anvil", "Rope"] },
	        { "id": "products.tags", "name": "tags", "type": "multivalue", "strategy": "random",
	          "options": ["new", "sale", "clearance"], "delimiter": "|" },
	        { "id": "products.origin", "name": "origin", "type": "text", "strategy": "reference", "fileId": "countries" },
	        { "id": "products.createdAt", "name": "createdAt", "type": "datetime", "strategy": "date" },
	        { "id": "products.shippedAt", "name": "shippedAt", "type": "datetime", "strategy": "date",
	          "dateLogic": { "mode": "column", "operator": "after", "columnId": "products.createdAt",
	                         "minOffsetDays": 1, "maxOffsetDays": 9 } },
	        { "id": "products.leadDays", "name": "leadDays", "type": "number", "strategy": "duration",
	          "duration": { "startColumnId": "products.createdAt", "endColumnId": "products.shippedAt", "unit": "days" } },
	        { "id": "products.rev", "name": "rev", "type": "text", "strategy": "revision", "revisionSchema": "-, A, B" },
	        { "id": "products.description", "name": "description", "type": "text", "strategy": "ai",
	          "prompt": "describe the product", "dependsOn": ["products.name"] }
	      ]
	    },
	    {
	      "id": "orders",
	      "name": "Orders",
	      "generation": { "mode": "per_parent", "minPerParent": 1, "maxPerParent": 2, "drivingParentTableId": "products" },
	      "columns": [
	        { "id": "orders.id", "name": "id", "type": "text", "strategy": "pattern", "pattern": "ORD-####" },
	        { "id": "orders.productId", "name": "productId", "type": "text" }
	      ]
	    }
	  ],
	  "relationships": [
	    { "id": "orders-products", "sourceTableId": "orders", "sourceColumnId": "orders.productId",
	      "targetTableId": "products", "targetColumnId": "products.id", "cardinality": "1:N" }
	  ],
	  "referenceFiles": [
	    { "id": "countries", "name": "Countries", "values": ["DE", "FR"] }
	  ]
	}`

	project, err := ReadProject(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, project.Tables, 2)

	products := project.Tables[0]
	assert.Equal(t, "Products", products.Name)
	assert.True(t, products.Generation.Mode.Equals(ir.GenerationModeFixed))
	assert.Equal(t, util.Some(4), products.Generation.FixedCount)

	rules := util.Map(products.Columns, func(c *ir.Column) ir.Rule { return c.Rule })
	assert.Equal(t, []ir.Rule{
		ir.PatternRule{Pattern: "P-###"},
		ir.CopyRule{},
		ir.RandomRule{Options: []string{"new", "sale", "clearance"}, Delimiter: "|"},
		ir.ReferenceRule{FileID: "countries"},
		ir.DateRule{},
		ir.DateRule{Logic: &ir.DateLogic{
			Mode:          ir.DateLogicModeColumn,
			Operator:      ir.DateOperatorAfter,
			ColumnID:      "products.createdAt",
			MinOffsetDays: 1,
			MaxOffsetDays: 9,
		}},
		ir.DurationRule{
			StartColumnID: "products.createdAt",
			EndColumnID:   "products.shippedAt",
			Unit:          ir.DurationUnitDays,
		},
		ir.RevisionRule{},
		ir.AIRule{Prompt: "describe the product", DependsOn: []string{"products.name"}},
	}, rules)
	assert.True(t, products.Columns[2].Type.Equals(ir.DataTypeMultiValue))
	assert.Equal(t, []string{"Anvil", "Rope"}, products.Columns[1].SampleValues)
	assert.Equal(t, "-, A, B", products.Columns[7].RevisionSchema)

	orders := project.Tables[1]
	assert.True(t, orders.Generation.Mode.Equals(ir.GenerationModePerParent))
	assert.Equal(t, util.Some(1), orders.Generation.MinPerParent)
	assert.Equal(t, util.Some(2), orders.Generation.MaxPerParent)
	assert.Equal(t, "products", orders.Generation.DrivingParentTableID)

	// the relationship derives a linked rule onto the fk column
	assert.Equal(t, ir.LinkedRule{TableID: "products", ColumnID: "products.id"}, orders.Columns[1].Rule)

	require.Len(t, project.ReferenceFiles, 1)
	assert.Equal(t, []string{"DE", "FR"}, project.ReferenceFiles[0].Values)
}

func TestReadProject_AbsentStrategyDefaultsToCopy(t *testing.T) {
	doc := `{"tables": [{"id": "t", "name": "T", "columns": [{"id": "c", "name": "c"}]}]}`
	project, err := ReadProject(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, ir.CopyRule{}, project.Tables[0].Columns[0].Rule)
	assert.True(t, project.Tables[0].Columns[0].Type.Equals(ir.DataTypeText))
}

func TestReadProject_UnknownStrategyFails(t *testing.T) {
	doc := `{"tables": [{"id": "t", "name": "T", "columns": [{"id": "c", "name": "c", "strategy": "telepathy"}]}]}`
	_, err := ReadProject(strings.NewReader(doc))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unknown strategy 'telepathy'")
		assert.Contains(t, err.Error(), "could not process tables")
	}
}

func TestReadProject_MalformedJSONFails(t *testing.T) {
	_, err := ReadProject(strings.NewReader(`{"tables": [`))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "could not parse project document")
	}
}

func TestReadProject_CollectsEveryValidationError(t *testing.T) {
	doc := `{
	  "tables": [
	    { "id": "t", "name": "T", "columns": [
	      { "id": "c", "name": "c", "strategy": "ai", "prompt": "x", "dependsOn": ["ghost"] }
	    ]},
	    { "id": "t", "name": "T", "columns": [{ "id": "c", "name": "c" }] }
	  ]
	}`
	_, err := ReadProject(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project failed validation")
	assert.Contains(t, err.Error(), `depends on unknown column id "ghost"`)
	assert.Contains(t, err.Error(), `two tables with id "t"`)

	merr, ok := errors.Cause(err).(*multierror.Error)
	if assert.True(t, ok, "validation errors are collected, not truncated") {
		assert.Len(t, merr.Errors, 3)
	}
}

func TestLoadProject_MissingFile(t *testing.T) {
	_, err := LoadProject("/no/such/project.json")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "could not read project file")
	}
}
