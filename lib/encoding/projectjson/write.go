package projectjson

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

// SaveProject writes the project as an indented JSON document. Saving
// normalizes: an absent column type becomes text and a nil rule becomes an
// explicit copy strategy.
func SaveProject(filename string, project *ir.Project) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not open file %s for writing", filename)
	}
	defer f.Close()

	if err := WriteProject(f, project); err != nil {
		return errors.Wrapf(err, "could not write project document to %s", filename)
	}
	return nil
}

func WriteProject(w io.Writer, project *ir.Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromIR(project))
}

func FromIR(project *ir.Project) *Document {
	return &Document{
		Tables:         util.Map(project.Tables, tableFromIR),
		Relationships:  util.Map(project.Relationships, relationshipFromIR),
		ReferenceFiles: util.Map(project.ReferenceFiles, referenceFileFromIR),
	}
}

func tableFromIR(table *ir.Table) *Table {
	return &Table{
		ID:         table.ID,
		Name:       table.Name,
		Generation: generationFromIR(table.Generation),
		Columns:    util.Map(table.Columns, columnFromIR),
	}
}

func generationFromIR(settings ir.GenerationSettings) *Generation {
	return &Generation{
		Mode:                 string(settings.Mode),
		FixedCount:           settings.FixedCount.Ptr(),
		MinPerParent:         settings.MinPerParent.Ptr(),
		MaxPerParent:         settings.MaxPerParent.Ptr(),
		DrivingParentTableID: settings.DrivingParentTableID,
	}
}

func columnFromIR(column *ir.Column) *Column {
	out := &Column{
		ID:             column.ID,
		Name:           column.Name,
		Type:           string(column.Type),
		Strategy:       string(ir.KindOf(column.Rule)),
		SampleValues:   column.SampleValues,
		RevisionSchema: column.RevisionSchema,
	}
	switch rule := column.Rule.(type) {
	case ir.PatternRule:
		out.Pattern = rule.Pattern
	case ir.RandomRule:
		out.Options = rule.Options
		out.Delimiter = rule.Delimiter
	case ir.ReferenceRule:
		out.FileID = rule.FileID
	case ir.LinkedRule:
		out.LinkedTableID = rule.TableID
		out.LinkedColumnID = rule.ColumnID
	case ir.DateRule:
		out.DateLogic = dateLogicFromIR(rule.Logic)
	case ir.DurationRule:
		out.Duration = &Duration{
			StartTableID:  rule.StartTableID,
			StartColumnID: rule.StartColumnID,
			EndTableID:    rule.EndTableID,
			EndColumnID:   rule.EndColumnID,
			Unit:          string(rule.Unit),
		}
	case ir.AIRule:
		out.Prompt = rule.Prompt
		out.DependsOn = rule.DependsOn
	}
	return out
}

func dateLogicFromIR(logic *ir.DateLogic) *DateLogic {
	if logic == nil {
		return nil
	}
	return &DateLogic{
		Mode:           string(logic.Mode),
		Operator:       string(logic.Operator),
		ColumnID:       logic.ColumnID,
		SecondColumnID: logic.SecondColumnID,
		MinOffsetDays:  logic.MinOffsetDays,
		MaxOffsetDays:  logic.MaxOffsetDays,
	}
}

func relationshipFromIR(rel *ir.Relationship) *Relationship {
	return &Relationship{
		ID:             rel.ID,
		SourceTableID:  rel.SourceTableID,
		SourceColumnID: rel.SourceColumnID,
		TargetTableID:  rel.TargetTableID,
		TargetColumnID: rel.TargetColumnID,
		Cardinality:    string(rel.Cardinality),
	}
}

func referenceFileFromIR(file *ir.ReferenceFile) *ReferenceFile {
	return &ReferenceFile{ID: file.ID, Name: file.Name, Values: file.Values}
}
