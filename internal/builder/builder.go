package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"

	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/gen"
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/qobs-build/mkgen/internal/validate"
	"golang.org/x/sync/errgroup"
)

var (
	errNothingToRun    = errors.New("no application artifact to run")
	errDuplicateScript = errors.New("two artifacts would write the same script")
)

// Options adjust how a config file is read
type Options struct {
	// Format is one of the config.Format* values; empty means auto
	Format string
	// Toolchain overrides the toolchain of a project config
	Toolchain string
}

// Script is the generated build script of one artifact
type Script struct {
	Artifact config.Artifact
	// File is the script's file name relative to the config directory
	File string
	// Output is the path of the built file relative to the config directory
	Output   string
	Compiler string
	Tool     gen.Tool
	Text     string
}

type Builder struct {
	file    string
	basedir string
	project *config.Project
	gen     gen.Generator
	jobs    int
}

// LoadDocument reads a config file, applies opts and evaluates its
// expressions. The result is not validated.
func LoadDocument(file string, opts Options) (*config.Document, error) {
	doc, err := config.Load(file, opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.Toolchain != "" {
		if doc.Form == config.FormProject {
			doc.SetToolchain(opts.Toolchain)
		} else {
			msg.Warn("ignoring toolchain %q: %s configs select their compiler by host", opts.Toolchain, doc.Form)
		}
	}

	if err := doc.Evaluate(config.EnvFor(doc)); err != nil {
		return nil, err
	}
	return doc, nil
}

// NewBuilderFromFile loads, validates and decodes the config at file.
// Project configs that fail validation return a *validate.Error.
func NewBuilderFromFile(file string, opts Options) (*Builder, error) {
	file, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	doc, err := LoadDocument(file, opts)
	if err != nil {
		return nil, err
	}

	if doc.Form == config.FormProject {
		if err := validate.Validate(doc.Project()).Err(); err != nil {
			return nil, err
		}
	}

	project, err := doc.Decode()
	if err != nil {
		return nil, err
	}

	basedir := filepath.Dir(file)
	if err := project.ExpandGlobs(basedir); err != nil {
		return nil, err
	}

	g, err := gen.New(project.Toolchain)
	if err != nil {
		return nil, err
	}

	msg.Debug("loaded %s config %s with %d artifact(s)", doc.Form, file, len(project.Artifacts))
	return &Builder{
		file:    file,
		basedir: basedir,
		project: project,
		gen:     g,
		jobs:    runtime.NumCPU(),
	}, nil
}

func (b *Builder) Project() *config.Project { return b.project }

// Dir is the directory scripts are written to and run in
func (b *Builder) Dir() string { return b.basedir }

// scriptName names the script file of an artifact. A lone artifact gets
// the build tool's default file name.
func (b *Builder) scriptName(a config.Artifact) (string, error) {
	if len(b.project.Artifacts) == 1 {
		return "Makefile", nil
	}
	name := a.OutputName
	if name == "" {
		if len(a.Files) == 0 {
			return "", gen.ErrNoSourceFiles
		}
		var err error
		if name, err = gen.ExecutableName(a.Files[0]); err != nil {
			return "", err
		}
	}
	return name + ".mk", nil
}

// Scripts generates the script of every artifact, in artifact order
func (b *Builder) Scripts(ctx context.Context) ([]Script, error) {
	header := b.header()
	artifacts := b.project.Artifacts
	scripts := make([]Script, len(artifacts))

	indices := make([]int, len(artifacts))
	for i := range indices {
		indices[i] = i
	}

	err := runJobs(ctx, indices, func(i int) error {
		a := artifacts[i]
		text, err := b.gen.Generate(a)
		if err != nil {
			return fmt.Errorf("artifact %s: %w", describe(a, i), err)
		}
		out, err := b.gen.OutputFile(a)
		if err != nil {
			return fmt.Errorf("artifact %s: %w", describe(a, i), err)
		}
		file, err := b.scriptName(a)
		if err != nil {
			return fmt.Errorf("artifact %s: %w", describe(a, i), err)
		}
		compiler, err := compilerFor(b.gen, a)
		if err != nil {
			return fmt.Errorf("artifact %s: %w", describe(a, i), err)
		}
		scripts[i] = Script{
			Artifact: a,
			File:     file,
			Output:   out,
			Compiler: compiler,
			Tool:     b.gen.Tool(),
			Text:     header + text,
		}
		return nil
	}, b.jobs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(scripts))
	for _, s := range scripts {
		if seen[s.File] {
			return nil, fmt.Errorf("%w: %s", errDuplicateScript, s.File)
		}
		seen[s.File] = true
	}
	return scripts, nil
}

func describe(a config.Artifact, i int) string {
	if a.Title != "" {
		return fmt.Sprintf("%q", a.Title)
	}
	return fmt.Sprint(i)
}

// header is prepended to every script. It names the config and, inside a
// git work tree, the checked out revision.
func (b *Builder) header() string {
	header := fmt.Sprintf("# Code generated by mkgen from %s; DO NOT EDIT.\n", filepath.Base(b.file))
	if rev, ok := gitRevision(b.basedir); ok {
		header += "# revision: " + rev + "\n"
	}
	return header + "\n"
}

// Write stores scripts next to the config file
func (b *Builder) Write(scripts []Script) error {
	for _, s := range scripts {
		file := filepath.Join(b.basedir, s.File)
		if err := os.WriteFile(file, []byte(s.Text), 0o644); err != nil {
			return err
		}
		msg.Debug("wrote %s", file)
	}
	return nil
}

// Build runs every script in artifact order, so libraries exist before the
// artifacts linking them
func (b *Builder) Build(ctx context.Context, scripts []Script) error {
	for _, s := range scripts {
		if dir := path.Dir(s.Output); dir != "." {
			if err := os.MkdirAll(filepath.Join(b.basedir, filepath.FromSlash(dir)), 0o755); err != nil {
				return err
			}
		}
		checkTools(s)

		msg.Info("building %s", s.Output)
		if err := s.Tool.Invoke(ctx, b.basedir, s.File); err != nil {
			return fmt.Errorf("building %s: %w", s.Output, err)
		}
	}
	return nil
}

// BuildAndRun builds every artifact, then runs the last application with
// args
func (b *Builder) BuildAndRun(ctx context.Context, args []string) error {
	scripts, err := b.Scripts(ctx)
	if err != nil {
		return err
	}

	var app *Script
	for i := range scripts {
		if isApplication(b.project, scripts[i].Artifact) {
			app = &scripts[i]
		}
	}
	if app == nil {
		return errNothingToRun
	}

	if err := b.Write(scripts); err != nil {
		return err
	}
	if err := b.Build(ctx, scripts); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, filepath.Join(b.basedir, filepath.FromSlash(app.Output)), args...)
	cmd.Dir = b.basedir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// isApplication reports whether a builds an executable. Host based
// artifacts always do.
func isApplication(p *config.Project, a config.Artifact) bool {
	if p.Toolchain == "" {
		return true
	}
	return a.Type == validate.Application
}

// runJobs runs jobs in parallel
func runJobs[T any](ctx context.Context, jobs []T, jobfunc func(job T) error, limit int) error {
	if len(jobs) == 0 {
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for _, job := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return jobfunc(job)
		})
	}

	return eg.Wait()
}
