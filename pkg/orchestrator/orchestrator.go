package orchestrator

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-extmodel/pkg/descriptor"
	"github.com/goliatone/go-extmodel/pkg/generator"
	"github.com/goliatone/go-extmodel/pkg/model"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger injects the logger used for per-class progress and failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithStore injects the artifact store. Defaults to a DirStore rooted at
// the current directory.
func WithStore(store ArtifactStore) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.store = store
		}
	}
}

// WithConfig sets the output configuration shared by every class in a run.
func WithConfig(cfg generator.Config) Option {
	return func(o *Orchestrator) {
		o.cfg = cfg
	}
}

// WithBaseAndSubclass splits every model into a Base artifact, always
// overwritten, and a companion artifact created only when absent so local
// edits survive regeneration.
func WithBaseAndSubclass(enabled bool) Option {
	return func(o *Orchestrator) {
		o.baseAndSubclass = enabled
	}
}

// Orchestrator runs the per-class generation loop: build the canonical
// model, render it, and persist the artifacts. Classes are independent; a
// failing class is logged and reported without aborting the rest of the
// run.
type Orchestrator struct {
	logger          zerolog.Logger
	store           ArtifactStore
	cfg             generator.Config
	baseAndSubclass bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: zerolog.Nop(),
		store:  NewDirStore("."),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Artifact records one persisted output.
type Artifact struct {
	// Model is the full model name the artifact defines.
	Model string
	// Path is the store-relative artifact path.
	Path string
}

// Generate processes every class and returns the artifacts written. The
// returned error aggregates per-class failures; artifacts for the classes
// that succeeded are still written and reported.
func (o *Orchestrator) Generate(ctx context.Context, classes []descriptor.Class) ([]Artifact, error) {
	builder := model.NewBuilder(model.Options{
		IncludeValidation: o.cfg.IncludeValidation,
	})

	var artifacts []Artifact
	var result *multierror.Error

	for _, class := range classes {
		if err := ctx.Err(); err != nil {
			return artifacts, multierror.Append(result, err).ErrorOrNil()
		}

		written, err := o.generateClass(builder, class)
		if err != nil {
			o.logger.Error().Err(err).Str("class", class.Name).Msg("generation failed")
			result = multierror.Append(result, errors.Wrapf(err, "class %s", class.Name))
			continue
		}
		for _, artifact := range written {
			o.logger.Info().Str("model", artifact.Model).Str("artifact", artifact.Path).Msg("generated")
		}
		artifacts = append(artifacts, written...)
	}

	return artifacts, result.ErrorOrNil()
}

func (o *Orchestrator) generateClass(builder *model.Builder, class descriptor.Class) ([]Artifact, error) {
	m, err := builder.Build(class)
	if err != nil {
		return nil, err
	}

	code, err := generator.Generate(m, o.cfg)
	if err != nil {
		return nil, err
	}

	name := artifactPath(m.Name)
	if !o.baseAndSubclass {
		if err := o.store.Write(name, []byte(code)); err != nil {
			return nil, err
		}
		return []Artifact{{Model: m.Name, Path: name}}, nil
	}

	baseName := strings.TrimSuffix(name, ".js") + "Base.js"
	baseCode := defineNamePattern.ReplaceAllStringFunc(code, replaceDefineNameOnce())
	if err := o.store.Write(baseName, []byte(baseCode)); err != nil {
		return nil, err
	}
	artifacts := []Artifact{{Model: m.Name + "Base", Path: baseName}}

	// Best effort: the probe and the write are not atomic, which is
	// acceptable since an existing companion is user-owned anyway.
	if !o.store.Exists(name) {
		if err := o.store.Write(name, []byte(subclassStub(m.Name, o.cfg))); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Model: m.Name, Path: name})
	}
	return artifacts, nil
}

var defineNamePattern = regexp.MustCompile(`(Ext\.define\(["'].+?)(["'],)`)

// replaceDefineNameOnce suffixes the first defined class name with "Base",
// leaving any later matches (inside string values, say) untouched.
func replaceDefineNameOnce() func(string) string {
	done := false
	return func(match string) string {
		if done {
			return match
		}
		done = true
		return defineNamePattern.ReplaceAllString(match, "${1}Base${2}")
	}
}

// subclassStub is the one-time companion definition extending the Base
// class. It honors the run's quote style so it blends with the generated
// artifacts.
func subclassStub(name string, cfg generator.Config) string {
	stub := `Ext.define("` + name + `",{extend:"` + name + `Base"});`
	if cfg.UseSingleQuotes {
		stub = strings.ReplaceAll(stub, `"`, `'`)
	}
	return stub
}

// artifactPath maps a model name to its store-relative path: the last
// segment of a qualified name is the file name and the middle segments form
// the package directory, so "App.model.User" lands at "model/User.js".
func artifactPath(name string) string {
	lastDot := strings.LastIndex(name, ".")
	if lastDot == -1 {
		return name + ".js"
	}
	file := name[lastDot+1:]
	firstDot := strings.Index(name, ".")
	if firstDot == lastDot {
		return file + ".js"
	}
	pkg := strings.ReplaceAll(name[firstDot+1:lastDot], ".", "/")
	return path.Join(pkg, file+".js")
}
