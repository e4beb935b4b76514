package config

type Args struct {
	// Global switches and flags
	Verbose []bool `arg:"-v" help:"see more detail (verbose). -vvv is not advised for normal use."`
	Quiet   []bool `arg:"-q" help:"see less detail (quiet)."`
	Debug   bool   `arg:"--debug" help:"display extended information about errors. Automatically implies -vv."`

	// Generating datasets from a project definition
	ProjectFile string `arg:"--project" help:"project definition to generate a dataset from"`
	Seed        *int64 `arg:"--seed" help:"seed for the random source, for reproducible output. Defaults to the current time."`
	OutputZip   string `arg:"--output" help:"path of the zip archive to write"`
	OutputDir   string `arg:"--outputdir" help:"directory to write one csv per table into, instead of a zip"`

	// Database extraction utilities
	DbSchemaDump bool    `arg:"--dbschemadump" help:"extract a starter project definition from a live database"`
	DbHost       string  `arg:"--dbhost" help:"database server hostname"`
	DbPort       uint    `arg:"--dbport" help:"database server port. Defaults to 5432."`
	DbName       string  `arg:"--dbname" help:"database name"`
	DbUser       string  `arg:"--dbuser" help:"database username"`
	DbPassword   *string `arg:"--dbpassword" help:"database password. Prompted for on the console when omitted."`
	SampleLimit  int     `arg:"--samplelimit" help:"live rows pulled into each column's sample pool"`
	OutputFile   string  `arg:"--outputfile" help:"path of the project json to write"`
}
