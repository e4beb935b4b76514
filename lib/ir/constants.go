package ir

import (
	"fmt"
	"strings"
)

type GenerationMode string

const (
	GenerationModeFixed     GenerationMode = "fixed"
	GenerationModePerParent GenerationMode = "per_parent"
)

func NewGenerationMode(from string) (GenerationMode, error) {
	to := GenerationMode(from)
	if from == "" {
		return GenerationModeFixed, nil
	}
	if to.Equals(GenerationModeFixed) || to.Equals(GenerationModePerParent) {
		return to, nil
	}
	return to, fmt.Errorf("unknown GenerationMode: '%s'", from)
}

func (gm GenerationMode) Equals(other GenerationMode) bool {
	return strings.EqualFold(string(gm), string(other))
}

type Cardinality string

const (
	CardinalityUnknown  Cardinality = ""
	CardinalityOneToOne Cardinality = "1:1"
	CardinalityOneToN   Cardinality = "1:N"
	CardinalityNToM     Cardinality = "N:M"
)

func NewCardinality(from string) (Cardinality, error) {
	to := Cardinality(from)
	if to.Equals(CardinalityOneToOne) || to.Equals(CardinalityOneToN) || to.Equals(CardinalityNToM) {
		return to, nil
	}
	return to, fmt.Errorf("unknown Cardinality: '%s'", from)
}

func (c Cardinality) Equals(other Cardinality) bool {
	return strings.EqualFold(string(c), string(other))
}

type DataType string

const (
	DataTypeText       DataType = "text"
	DataTypeNumber     DataType = "number"
	DataTypeBoolean    DataType = "boolean"
	DataTypeDate       DataType = "date"
	DataTypeDateTime   DataType = "datetime"
	DataTypeMultiValue DataType = "multivalue"
)

func NewDataType(from string) (DataType, error) {
	to := DataType(from)
	if from == "" {
		return DataTypeText, nil
	}
	for _, known := range []DataType{DataTypeText, DataTypeNumber, DataTypeBoolean, DataTypeDate, DataTypeDateTime, DataTypeMultiValue} {
		if to.Equals(known) {
			return to, nil
		}
	}
	return to, fmt.Errorf("unknown DataType: '%s'", from)
}

func (dt DataType) Equals(other DataType) bool {
	return strings.EqualFold(string(dt), string(other))
}

// IsDate reports whether values of this type are rendered as timestamps,
// which routes the column through date resolution regardless of its
// generation strategy.
func (dt DataType) IsDate() bool {
	return dt.Equals(DataTypeDate) || dt.Equals(DataTypeDateTime)
}

type DateLogicMode string

const (
	DateLogicModeNow     DateLogicMode = "now"
	DateLogicModeColumn  DateLogicMode = "column"
	DateLogicModeBetween DateLogicMode = "between"
)

func NewDateLogicMode(from string) (DateLogicMode, error) {
	to := DateLogicMode(from)
	if to.Equals(DateLogicModeNow) || to.Equals(DateLogicModeColumn) || to.Equals(DateLogicModeBetween) {
		return to, nil
	}
	return to, fmt.Errorf("unknown DateLogicMode: '%s'", from)
}

func (dlm DateLogicMode) Equals(other DateLogicMode) bool {
	return strings.EqualFold(string(dlm), string(other))
}

type DateOperator string

const (
	DateOperatorBefore   DateOperator = "before"
	DateOperatorOnBefore DateOperator = "onbefore"
	DateOperatorAfter    DateOperator = "after"
	DateOperatorOnAfter  DateOperator = "onafter"
)

func NewDateOperator(from string) (DateOperator, error) {
	to := DateOperator(from)
	if from == "" {
		return DateOperatorOnAfter, nil
	}
	for _, known := range []DateOperator{DateOperatorBefore, DateOperatorOnBefore, DateOperatorAfter, DateOperatorOnAfter} {
		if to.Equals(known) {
			return to, nil
		}
	}
	return to, fmt.Errorf("unknown DateOperator: '%s'", from)
}

func (do DateOperator) Equals(other DateOperator) bool {
	return strings.EqualFold(string(do), string(other))
}

// Subtracts reports whether the operator offsets backwards in time.
func (do DateOperator) Subtracts() bool {
	return do.Equals(DateOperatorBefore) || do.Equals(DateOperatorOnBefore)
}

// Exclusive reports whether the operator excludes the base instant itself.
func (do DateOperator) Exclusive() bool {
	return do.Equals(DateOperatorBefore) || do.Equals(DateOperatorAfter)
}

type DurationUnit string

const (
	DurationUnitDays  DurationUnit = "days"
	DurationUnitHours DurationUnit = "hours"
)

func NewDurationUnit(from string) (DurationUnit, error) {
	to := DurationUnit(from)
	if from == "" {
		return DurationUnitDays, nil
	}
	if to.Equals(DurationUnitDays) || to.Equals(DurationUnitHours) {
		return to, nil
	}
	return to, fmt.Errorf("unknown DurationUnit: '%s'", from)
}

func (du DurationUnit) Equals(other DurationUnit) bool {
	return strings.EqualFold(string(du), string(other))
}
