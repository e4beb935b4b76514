package ir

type RuleKind string

const (
	RuleKindCopy      RuleKind = "copy"
	RuleKindPattern   RuleKind = "pattern"
	RuleKindRandom    RuleKind = "random"
	RuleKindReference RuleKind = "reference"
	RuleKindLinked    RuleKind = "linked"
	RuleKindDate      RuleKind = "date"
	RuleKindDuration  RuleKind = "duration"
	RuleKindRevision  RuleKind = "revision"
	RuleKindAI        RuleKind = "ai"
)

// Rule is the generation strategy attached to a column. Each strategy is its
// own variant carrying only the fields that strategy needs; resolution
// dispatches with a type switch. A nil Rule behaves as CopyRule.
type Rule interface {
	Kind() RuleKind
}

// CopyRule cycles through the column's original sample values.
type CopyRule struct{}

func (CopyRule) Kind() RuleKind { return RuleKindCopy }

// PatternRule renders a literal pattern per row. "UUID" yields a random
// UUID, "HEX-<n>" yields n random uppercase hex digits, and every run of
// '#' is replaced with the 1-based row index zero-padded to the run width.
// A pattern without '#' has the raw 0-based index appended.
type PatternRule struct {
	Pattern string
}

func (PatternRule) Kind() RuleKind { return RuleKindPattern }

// RandomRule draws uniformly from Options. Multivalue-typed columns draw
// 1-3 de-duplicated options joined with Delimiter.
type RandomRule struct {
	Options   []string
	Delimiter string
}

func (RandomRule) Kind() RuleKind { return RuleKindRandom }

// ReferenceRule draws uniformly from a reference file's value pool.
type ReferenceRule struct {
	FileID string
}

func (ReferenceRule) Kind() RuleKind { return RuleKindReference }

// LinkedRule draws from a parent table column's generated values, keeping
// foreign keys consistent. Normally derived from a relationship by
// Project.DeriveLinkedRules; may also be configured by hand.
type LinkedRule struct {
	TableID  string
	ColumnID string
}

func (LinkedRule) Kind() RuleKind { return RuleKindLinked }

// Configured reports whether both link endpoints are set.
func (r LinkedRule) Configured() bool {
	return r.TableID != "" && r.ColumnID != ""
}

// DateLogic computes a timestamp as an offset from a base instant: now
// (ModeNow), another column's value (ModeColumn), or uniformly between two
// columns' values (ModeBetween, which ignores Operator). The offset is a
// uniform day count in [MinOffsetDays, MaxOffsetDays], signed by Operator.
type DateLogic struct {
	Mode           DateLogicMode
	Operator       DateOperator
	ColumnID       string
	SecondColumnID string
	MinOffsetDays  int
	MaxOffsetDays  int
}

// DateRule carries optional explicit date logic. Date-typed columns without
// it fall back to name heuristics (modified >= created) and then to a
// uniform draw within the last five years.
type DateRule struct {
	Logic *DateLogic
}

func (DateRule) Kind() RuleKind { return RuleKindDate }

// DurationRule emits (end - start) in Unit, clamped at zero. The start and
// end columns may live in this table or in a relationship-connected table;
// empty table ids mean the column's own table.
type DurationRule struct {
	StartTableID  string
	StartColumnID string
	EndTableID    string
	EndColumnID   string
	Unit          DurationUnit
}

func (DurationRule) Kind() RuleKind { return RuleKindDuration }

// RevisionRule draws uniformly from the tokens of the column's revision
// schema.
type RevisionRule struct{}

func (RevisionRule) Kind() RuleKind { return RuleKindRevision }

// AIRule defers the column to the external content service. DependsOn names
// other columns of the same table whose generated values are fed into the
// per-row context; dependencies between AI columns order the batched calls.
type AIRule struct {
	Prompt    string
	DependsOn []string
}

func (AIRule) Kind() RuleKind { return RuleKindAI }

// KindOf returns the rule's kind, treating nil as copy.
func KindOf(r Rule) RuleKind {
	if r == nil {
		return RuleKindCopy
	}
	return r.Kind()
}
