package extract

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

// DefaultSampleLimit is how many live rows feed each column's sample pool
// when the caller does not say otherwise.
const DefaultSampleLimit = 25

// BuildProject introspects a live database into a starter project: one
// fixed-mode table per relation, data types and rules inferred from the
// catalog, sample values pulled from live rows, and one relationship per
// single-column foreign key. The result is a skeleton meant to be saved
// and tuned by hand, not a finished configuration.
func BuildProject(logger zerolog.Logger, intro Introspector, sampleLimit int) (*ir.Project, error) {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}

	tables, err := intro.GetTableList()
	if err != nil {
		return nil, errors.Wrap(err, "could not list tables")
	}
	fks, err := intro.GetForeignKeys()
	if err != nil {
		return nil, errors.Wrap(err, "could not list foreign keys")
	}

	links := []ForeignKeyEntry{}
	for _, fk := range fks {
		if len(fk.LocalColumns) == 1 && len(fk.ForeignColumns) == 1 {
			links = append(links, fk)
			continue
		}
		logger.Warn().Msgf("Skipping foreign key %s on %s.%s: linked rules connect exactly one column to one column",
			fk.ConstraintName, fk.LocalSchema, fk.LocalTable)
	}

	project := &ir.Project{}
	pkByTable := map[string][]string{}
	for _, entry := range tables {
		table, pk, err := buildTable(intro, entry, links, sampleLimit)
		if err != nil {
			return nil, errors.Wrapf(err, "could not extract table %s.%s", entry.Schema, entry.Table)
		}
		pkByTable[table.ID] = pk
		project.AddTable(table)
	}

	for _, fk := range links {
		sourceTableID := tableID(fk.LocalSchema, fk.LocalTable)
		cardinality := ir.CardinalityOneToN
		if pk := pkByTable[sourceTableID]; len(pk) == 1 && pk[0] == fk.LocalColumns[0] {
			// a fk that is also the whole primary key admits at most one
			// child row per parent
			cardinality = ir.CardinalityOneToOne
		}
		project.AddRelationship(&ir.Relationship{
			ID:             fk.ConstraintName,
			SourceTableID:  sourceTableID,
			SourceColumnID: columnID(fk.LocalSchema, fk.LocalTable, fk.LocalColumns[0]),
			TargetTableID:  tableID(fk.ForeignSchema, fk.ForeignTable),
			TargetColumnID: columnID(fk.ForeignSchema, fk.ForeignTable, fk.ForeignColumns[0]),
			Cardinality:    cardinality,
		})
	}

	return project, nil
}

func buildTable(intro Introspector, entry TableEntry, links []ForeignKeyEntry, sampleLimit int) (*ir.Table, []string, error) {
	columns, err := intro.GetColumns(entry.Schema, entry.Table)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not describe columns")
	}
	pk, err := intro.GetPrimaryKey(entry.Schema, entry.Table)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not read primary key")
	}
	samples, err := intro.GetSampleRows(entry.Schema, entry.Table, sampleLimit)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not sample rows")
	}

	table := &ir.Table{
		ID:         tableID(entry.Schema, entry.Table),
		Name:       tableName(entry),
		Generation: ir.GenerationSettings{Mode: ir.GenerationModeFixed},
	}
	for _, col := range columns {
		table.AddColumn(&ir.Column{
			ID:           columnID(entry.Schema, entry.Table, col.Name),
			Name:         col.Name,
			Type:         inferDataType(col.AttrType),
			Rule:         inferRule(entry, col, pk, links),
			SampleValues: samples[col.Name],
		})
	}
	return table, pk, nil
}

func tableID(schema, table string) string {
	return schema + "." + table
}

func columnID(schema, table, column string) string {
	return schema + "." + table + "." + column
}

func tableName(entry TableEntry) string {
	if entry.Schema == "public" {
		return entry.Table
	}
	return entry.Schema + "." + entry.Table
}

var numericTypePrefixes = []string{
	"smallint", "integer", "bigint", "numeric", "decimal", "real", "double precision", "money",
}

func inferDataType(attrType string) ir.DataType {
	switch {
	case util.IHasPrefix(attrType, "timestamp"):
		return ir.DataTypeDateTime
	case strings.EqualFold(attrType, "date"):
		return ir.DataTypeDate
	case util.IHasPrefix(attrType, "bool"):
		return ir.DataTypeBoolean
	}
	for _, prefix := range numericTypePrefixes {
		if util.IHasPrefix(attrType, prefix) {
			return ir.DataTypeNumber
		}
	}
	return ir.DataTypeText
}

func inferRule(entry TableEntry, col ColumnEntry, pk []string, links []ForeignKeyEntry) ir.Rule {
	for _, fk := range links {
		if fk.LocalSchema == entry.Schema && fk.LocalTable == entry.Table && fk.LocalColumns[0] == col.Name {
			return ir.LinkedRule{
				TableID:  tableID(fk.ForeignSchema, fk.ForeignTable),
				ColumnID: columnID(fk.ForeignSchema, fk.ForeignTable, fk.ForeignColumns[0]),
			}
		}
	}
	if strings.EqualFold(col.AttrType, "uuid") || util.IIndex(col.Default, "uuid") >= 0 {
		return ir.PatternRule{Pattern: "UUID"}
	}
	if util.Contains(pk, col.Name) && util.IIndex(col.Default, "nextval(") >= 0 {
		return ir.PatternRule{Pattern: "####"}
	}
	return ir.CopyRule{}
}
