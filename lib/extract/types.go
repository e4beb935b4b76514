package extract

// Catalog entries returned by an Introspector, trimmed to what project
// extraction needs.

type TableEntry struct {
	Schema string
	Table  string
}

type ColumnEntry struct {
	Name     string
	Default  string
	AttrType string
}

type ForeignKeyEntry struct {
	ConstraintName string
	LocalSchema    string
	LocalTable     string
	LocalColumns   []string
	ForeignSchema  string
	ForeignTable   string
	ForeignColumns []string
}
