package lib

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/rowforge/rowforge/lib/config"
	"github.com/rowforge/rowforge/lib/encoding/projectjson"
	"github.com/rowforge/rowforge/lib/extract"
	"github.com/rowforge/rowforge/lib/generate"
	"github.com/rowforge/rowforge/lib/output"
	"github.com/rowforge/rowforge/lib/util"
)

var Version = "0.1.0"

var GlobalRowforge *Rowforge = NewRowforge()

type Rowforge struct {
	logger zerolog.Logger
}

func NewRowforge() *Rowforge {
	return &Rowforge{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
}

func (self *Rowforge) ArgParse() {
	args := &config.Args{}
	arg.MustParse(args)

	self.setVerbosity(args)

	// determine operation and check arguments for each
	mode := ModeUnknown
	switch {
	case len(args.ProjectFile) > 0:
		mode = ModeGenerate
	case args.DbSchemaDump:
		mode = ModeExtract
	}

	if mode == ModeGenerate {
		if len(args.OutputZip) == 0 && len(args.OutputDir) == 0 {
			self.Fatal("no output specified: use --output for a zip archive or --outputdir for loose csv files")
		}
		if len(args.OutputZip) > 0 && len(args.OutputDir) > 0 {
			self.Fatal("Parameter error: output and outputdir options are not to be mixed")
		}
		if len(args.OutputDir) > 0 && !util.IsDir(args.OutputDir) {
			self.Fatal("outputdir is not a directory, must be a writable directory")
		}
	}
	if mode == ModeExtract {
		if len(args.DbHost) == 0 {
			self.Fatal("dbhost not specified")
		}
		if len(args.DbName) == 0 {
			self.Fatal("dbname not specified")
		}
		if len(args.DbUser) == 0 {
			self.Fatal("dbuser not specified")
		}
		if len(args.OutputFile) == 0 {
			self.Fatal("output file not specified")
		}
		if args.DbPort == 0 {
			args.DbPort = 5432
		}
	}

	self.Notice("rowforge version %s", Version)

	switch mode {
	case ModeGenerate:
		self.doGenerate(args.ProjectFile, args.Seed, args.OutputZip, args.OutputDir)
	case ModeExtract:
		self.doExtract(args.DbHost, args.DbPort, args.DbName, args.DbUser, args.DbPassword, args.SampleLimit, args.OutputFile)
	default:
		self.Fatal("No operation specified")
	}
}

func (self *Rowforge) Fatal(s string, args ...interface{}) {
	self.logger.Fatal().Msgf(s, args...)
}

func (self *Rowforge) Warning(s string, args ...interface{}) {
	self.logger.Warn().Msgf(s, args...)
}
func (self *Rowforge) Notice(s string, args ...interface{}) {
	self.Info(s, args...)
}
func (self *Rowforge) Info(s string, args ...interface{}) {
	self.logger.Info().Msgf(s, args...)
}

func (self *Rowforge) setVerbosity(args *config.Args) {
	// remember, lower level is higher verbosity; zerolog.Level is an int8,
	// so repeated flags can just walk it up and down
	level := zerolog.InfoLevel

	if args.Debug {
		level = zerolog.TraceLevel
	}

	for _, v := range args.Verbose {
		if v {
			level -= 1
		} else {
			level += 1
		}
	}
	for _, q := range args.Quiet {
		if q {
			level += 1
		} else {
			level -= 1
		}
	}

	// clamp it to valid values
	if level > zerolog.PanicLevel {
		level = zerolog.PanicLevel
	}
	if level < zerolog.TraceLevel {
		level = zerolog.TraceLevel
	}

	self.logger = self.logger.Level(level)
}

func (self *Rowforge) doGenerate(projectFile string, seed *int64, outputZip, outputDir string) {
	project, err := projectjson.LoadProject(projectFile)
	if err != nil {
		self.Fatal("Could not load project %s: %s", projectFile, err.Error())
	}

	seedVal := time.Now().UnixNano()
	if seed != nil {
		seedVal = *seed
	}
	self.Info("Using random seed %d", seedVal)

	var writer output.ArchiveWriter
	if len(outputDir) > 0 {
		writer = output.NewDirWriter(outputDir)
	} else {
		zipFile, err := os.Create(outputZip)
		if err != nil {
			self.Fatal("Could not open %s for writing: %s", outputZip, err.Error())
		}
		defer zipFile.Close()
		writer = output.NewZipWriter(zipFile)
	}

	// no content service is wired in yet: AI columns degrade to their
	// sentinel value and the engine says so
	engine := generate.NewEngine(self.logger, rand.New(rand.NewSource(seedVal)), nil, func(message string) {
		self.Info("%s", message)
	})
	archive, err := engine.Generate(context.Background(), project, writer)
	if err != nil {
		self.Fatal("Generation failed: %s", err.Error())
	}

	for _, file := range archive.Files {
		self.Info("Wrote %s", file.Name)
	}
	self.Notice("Generated %d files, %d bytes of csv", len(archive.Files), archive.TotalSize)
}

func (self *Rowforge) doExtract(dbHost string, dbPort uint, dbName, dbUser string, dbPassword *string, sampleLimit int, outputFile string) {
	pass := ""
	if dbPassword != nil {
		pass = *dbPassword
	} else {
		p, err := util.PromptPassword(fmt.Sprintf("Password for %s@%s: ", dbUser, dbHost))
		if err != nil {
			self.Fatal("Could not read password: %s", err.Error())
		}
		pass = p
	}

	conn, err := extract.NewConnection(dbHost, dbPort, dbName, dbUser, pass)
	if err != nil {
		self.Fatal("Could not connect to database %s: %s", dbName, err.Error())
	}
	defer conn.Disconnect()

	project, err := extract.BuildProject(self.logger, extract.NewIntrospector(conn), sampleLimit)
	if err != nil {
		self.Fatal("Extraction failed: %s", err.Error())
	}

	self.Notice("Saving extracted project to %s", outputFile)
	if err := projectjson.SaveProject(outputFile, project); err != nil {
		self.Fatal("Could not save project: %s", err.Error())
	}
}
