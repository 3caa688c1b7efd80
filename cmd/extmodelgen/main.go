package main

import (
	"context"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-extmodel/pkg/descriptor"
	"github.com/goliatone/go-extmodel/pkg/generator"
	"github.com/goliatone/go-extmodel/pkg/model"
	"github.com/goliatone/go-extmodel/pkg/openapi"
	"github.com/goliatone/go-extmodel/pkg/orchestrator"
)

type args struct {
	Inputs            []string `arg:"positional,required" help:"descriptor files (YAML), or OpenAPI documents with --openapi"`
	Format            string   `arg:"-f,--format" default:"extjs5" help:"output dialect: extjs4, extjs5 or touch2"`
	Output            string   `arg:"-o,--output" default:"." help:"output directory for generated artifacts"`
	OpenAPI           bool     `arg:"--openapi" help:"treat inputs as OpenAPI 3 documents"`
	Debug             bool     `arg:"--debug" help:"pretty-print the generated configuration"`
	IncludeValidation string   `arg:"--include-validation" default:"none" help:"emit validations: none, builtin or all"`
	SingleQuotes      bool     `arg:"--single-quotes" help:"quote strings with single quotes"`
	SurroundAPIQuotes bool     `arg:"--surround-api-with-quotes" help:"quote direct method references in proxy api blocks"`
	LineEnding        string   `arg:"--line-ending" default:"system" help:"line endings in debug output: system, crlf or lf"`
	BaseAndSubclass   bool     `arg:"--base-and-subclass" help:"write a regenerated Base class plus an editable subclass"`
	Verbose           bool     `arg:"-v,--verbose" help:"enable debug logging"`
}

func (args) Description() string {
	return "extmodelgen renders Ext JS and Sencha Touch model definitions from class descriptors"
}

func main() {
	var cli args
	arg.MustParse(&cli)

	logger := newLogger(cli.Verbose)

	cfg, err := buildConfig(cli)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	classes, err := loadClasses(ctx, cli)
	if err != nil {
		logger.Fatal().Err(err).Msg("load inputs")
	}

	runner := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithStore(orchestrator.NewDirStore(cli.Output)),
		orchestrator.WithConfig(cfg),
		orchestrator.WithBaseAndSubclass(cli.BaseAndSubclass),
	)

	artifacts, err := runner.Generate(ctx, classes)
	if err != nil {
		logger.Error().Err(err).Msg("generation finished with errors")
		os.Exit(1)
	}
	logger.Info().Int("artifacts", len(artifacts)).Msg("done")
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func buildConfig(cli args) (generator.Config, error) {
	dialect, err := generator.ParseDialect(cli.Format)
	if err != nil {
		return generator.Config{}, err
	}
	include, err := model.ParseIncludeValidation(cli.IncludeValidation)
	if err != nil {
		return generator.Config{}, err
	}
	lineEnding, err := generator.ParseLineEnding(cli.LineEnding)
	if err != nil {
		return generator.Config{}, err
	}
	return generator.Config{
		Dialect:               dialect,
		Debug:                 cli.Debug,
		IncludeValidation:     include,
		UseSingleQuotes:       cli.SingleQuotes,
		SurroundAPIWithQuotes: cli.SurroundAPIQuotes,
		LineEnding:            lineEnding,
	}, nil
}

func loadClasses(ctx context.Context, cli args) ([]descriptor.Class, error) {
	var classes []descriptor.Class
	for _, input := range cli.Inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if cli.OpenAPI {
			loaded, err := openapi.LoadFile(ctx, input)
			if err != nil {
				return nil, err
			}
			classes = append(classes, loaded...)
			continue
		}
		loaded, err := descriptor.LoadSource(ctx, descriptor.ParseSource(input))
		if err != nil {
			return nil, err
		}
		classes = append(classes, loaded...)
	}
	return classes, nil
}
