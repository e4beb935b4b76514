package projectjson

// Document is the on-disk JSON form of a project. It deliberately mirrors
// the ir types rather than reusing them: the wire format carries every rule
// strategy's fields flat on the column with a "strategy" discriminator, so
// hand-written documents stay shallow and diffable.
type Document struct {
	Tables         []*Table         `json:"tables"`
	Relationships  []*Relationship  `json:"relationships,omitempty"`
	ReferenceFiles []*ReferenceFile `json:"referenceFiles,omitempty"`
}

type Table struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Generation *Generation `json:"generation,omitempty"`
	Columns    []*Column   `json:"columns"`
}

// Generation defaults to fixed mode with the engine's default row count
// when omitted entirely.
type Generation struct {
	Mode                 string `json:"mode,omitempty"`
	FixedCount           *int   `json:"fixedCount,omitempty"`
	MinPerParent         *int   `json:"minPerParent,omitempty"`
	MaxPerParent         *int   `json:"maxPerParent,omitempty"`
	DrivingParentTableID string `json:"drivingParentTableId,omitempty"`
}

// Column carries the union of every strategy's fields; which ones are
// meaningful is decided by Strategy. An absent strategy means copy.
type Column struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type,omitempty"`
	Strategy       string     `json:"strategy,omitempty"`
	Pattern        string     `json:"pattern,omitempty"`
	Options        []string   `json:"options,omitempty"`
	Delimiter      string     `json:"delimiter,omitempty"`
	FileID         string     `json:"fileId,omitempty"`
	LinkedTableID  string     `json:"linkedTableId,omitempty"`
	LinkedColumnID string     `json:"linkedColumnId,omitempty"`
	DateLogic      *DateLogic `json:"dateLogic,omitempty"`
	Duration       *Duration  `json:"duration,omitempty"`
	Prompt         string     `json:"prompt,omitempty"`
	DependsOn      []string   `json:"dependsOn,omitempty"`
	SampleValues   []string   `json:"sampleValues,omitempty"`
	RevisionSchema string     `json:"revisionSchema,omitempty"`
}

type DateLogic struct {
	Mode           string `json:"mode"`
	Operator       string `json:"operator,omitempty"`
	ColumnID       string `json:"columnId,omitempty"`
	SecondColumnID string `json:"secondColumnId,omitempty"`
	MinOffsetDays  int    `json:"minOffsetDays"`
	MaxOffsetDays  int    `json:"maxOffsetDays"`
}

type Duration struct {
	StartTableID  string `json:"startTableId,omitempty"`
	StartColumnID string `json:"startColumnId"`
	EndTableID    string `json:"endTableId,omitempty"`
	EndColumnID   string `json:"endColumnId"`
	Unit          string `json:"unit,omitempty"`
}

// Relationship cardinality defaults to 1:N when omitted.
type Relationship struct {
	ID             string `json:"id"`
	SourceTableID  string `json:"sourceTableId"`
	SourceColumnID string `json:"sourceColumnId"`
	TargetTableID  string `json:"targetTableId"`
	TargetColumnID string `json:"targetColumnId"`
	Cardinality    string `json:"cardinality,omitempty"`
}

type ReferenceFile struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}
