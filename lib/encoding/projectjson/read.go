package projectjson

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/rowforge/rowforge/lib/ir"
	"github.com/rowforge/rowforge/lib/util"
)

// LoadProject reads a project document from a JSON file, derives linked
// rules from its relationships, and validates the result. Validation
// collects every error into one multierror instead of stopping at the
// first.
func LoadProject(file string) (*ir.Project, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read project file %s", file)
	}
	defer f.Close()

	return ReadProject(f)
}

func ReadProject(r io.Reader) (*ir.Project, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "could not parse project document")
	}

	project, err := doc.ToIR()
	if err != nil {
		return nil, err
	}
	project.DeriveLinkedRules()
	if errs := project.Validate(); len(errs) > 0 {
		return nil, errors.Wrap(&multierror.Error{Errors: errs}, "project failed validation")
	}
	return project, nil
}

// ToIR converts this Document to an ir.Project, if possible. No semantic
// validation happens here; see ir.Project.Validate.
func (self *Document) ToIR() (*ir.Project, error) {
	tables, err := util.MapErr(self.Tables, (*Table).ToIR)
	if err != nil {
		return nil, errors.Wrap(err, "could not process tables")
	}

	relationships, err := util.MapErr(self.Relationships, (*Relationship).ToIR)
	if err != nil {
		return nil, errors.Wrap(err, "could not process relationships")
	}

	return &ir.Project{
		Tables:         tables,
		Relationships:  relationships,
		ReferenceFiles: util.Map(self.ReferenceFiles, (*ReferenceFile).ToIR),
	}, nil
}

func (self *Table) ToIR() (*ir.Table, error) {
	generation, err := self.Generation.ToIR()
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", self.Name)
	}

	columns, err := util.MapErr(self.Columns, (*Column).ToIR)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", self.Name)
	}

	return &ir.Table{
		ID:         self.ID,
		Name:       self.Name,
		Columns:    columns,
		Generation: generation,
	}, nil
}

func (self *Generation) ToIR() (ir.GenerationSettings, error) {
	if self == nil {
		return ir.GenerationSettings{Mode: ir.GenerationModeFixed}, nil
	}
	mode, err := ir.NewGenerationMode(self.Mode)
	if err != nil {
		return ir.GenerationSettings{}, err
	}
	return ir.GenerationSettings{
		Mode:                 mode,
		FixedCount:           util.FromPtr(self.FixedCount),
		MinPerParent:         util.FromPtr(self.MinPerParent),
		MaxPerParent:         util.FromPtr(self.MaxPerParent),
		DrivingParentTableID: self.DrivingParentTableID,
	}, nil
}

func (self *Column) ToIR() (*ir.Column, error) {
	typ, err := ir.NewDataType(self.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "column %s", self.Name)
	}

	rule, err := self.ruleToIR()
	if err != nil {
		return nil, errors.Wrapf(err, "column %s", self.Name)
	}

	return &ir.Column{
		ID:             self.ID,
		Name:           self.Name,
		Type:           typ,
		Rule:           rule,
		SampleValues:   self.SampleValues,
		RevisionSchema: self.RevisionSchema,
	}, nil
}

func (self *Column) ruleToIR() (ir.Rule, error) {
	switch strings.ToLower(self.Strategy) {
	case "", string(ir.RuleKindCopy):
		return ir.CopyRule{}, nil
	case string(ir.RuleKindPattern):
		return ir.PatternRule{Pattern: self.Pattern}, nil
	case string(ir.RuleKindRandom):
		return ir.RandomRule{Options: self.Options, Delimiter: self.Delimiter}, nil
	case string(ir.RuleKindReference):
		return ir.ReferenceRule{FileID: self.FileID}, nil
	case string(ir.RuleKindLinked):
		return ir.LinkedRule{TableID: self.LinkedTableID, ColumnID: self.LinkedColumnID}, nil
	case string(ir.RuleKindDate):
		logic, err := self.DateLogic.ToIR()
		if err != nil {
			return nil, err
		}
		return ir.DateRule{Logic: logic}, nil
	case string(ir.RuleKindDuration):
		return self.durationToIR()
	case string(ir.RuleKindRevision):
		return ir.RevisionRule{}, nil
	case string(ir.RuleKindAI):
		return ir.AIRule{Prompt: self.Prompt, DependsOn: self.DependsOn}, nil
	}
	return nil, errors.Errorf("unknown strategy '%s'", self.Strategy)
}

func (self *DateLogic) ToIR() (*ir.DateLogic, error) {
	if self == nil {
		return nil, nil
	}
	mode, err := ir.NewDateLogicMode(self.Mode)
	if err != nil {
		return nil, err
	}
	operator, err := ir.NewDateOperator(self.Operator)
	if err != nil {
		return nil, err
	}
	return &ir.DateLogic{
		Mode:           mode,
		Operator:       operator,
		ColumnID:       self.ColumnID,
		SecondColumnID: self.SecondColumnID,
		MinOffsetDays:  self.MinOffsetDays,
		MaxOffsetDays:  self.MaxOffsetDays,
	}, nil
}

func (self *Column) durationToIR() (ir.Rule, error) {
	if self.Duration == nil {
		return ir.DurationRule{}, nil
	}
	unit, err := ir.NewDurationUnit(self.Duration.Unit)
	if err != nil {
		return nil, err
	}
	return ir.DurationRule{
		StartTableID:  self.Duration.StartTableID,
		StartColumnID: self.Duration.StartColumnID,
		EndTableID:    self.Duration.EndTableID,
		EndColumnID:   self.Duration.EndColumnID,
		Unit:          unit,
	}, nil
}

func (self *Relationship) ToIR() (*ir.Relationship, error) {
	cardinality, err := ir.NewCardinality(util.CoalesceStr(self.Cardinality, string(ir.CardinalityOneToN)))
	if err != nil {
		return nil, errors.Wrapf(err, "relationship %s", self.ID)
	}
	return &ir.Relationship{
		ID:             self.ID,
		SourceTableID:  self.SourceTableID,
		SourceColumnID: self.SourceColumnID,
		TargetTableID:  self.TargetTableID,
		TargetColumnID: self.TargetColumnID,
		Cardinality:    cardinality,
	}, nil
}

func (self *ReferenceFile) ToIR() *ir.ReferenceFile {
	return &ir.ReferenceFile{ID: self.ID, Name: self.Name, Values: self.Values}
}
