// Package main is the entry point for the lessonctl CLI application.
// lessonctl navigates a git-based coding course: it unpacks lesson
// commits into the working tree, replays them onto personal branches,
// and runs the exercises shipped with the lesson material.
package main

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/courselab/lessonctl/cmd"
	"github.com/courselab/lessonctl/internal/adapters/course"
	"github.com/courselab/lessonctl/internal/adapters/git"
	logadapter "github.com/courselab/lessonctl/internal/adapters/logger"
	"github.com/courselab/lessonctl/internal/adapters/prompt"
	"github.com/courselab/lessonctl/internal/adapters/runner"
	"github.com/courselab/lessonctl/internal/adapters/term"
	"github.com/courselab/lessonctl/internal/domain"
	"github.com/courselab/lessonctl/internal/infrastructure/config"
	"github.com/courselab/lessonctl/internal/usecases"
)

func main() {
	cmd.SetDefaultDependencies(buildDependencies())
	os.Exit(cmd.Execute())
}

// buildDependencies wires up the production dependencies.
func buildDependencies() *cmd.Dependencies {
	return &cmd.Dependencies{
		ConfigLoader: func(dir string) (*cmd.AppConfig, error) {
			cfg, err := config.Load(afero.NewOsFs(), dir)
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				CourseName:   cfg.CourseName,
				MainBranch:   cfg.MainBranch,
				LessonRoot:   cfg.LessonRoot,
				UpstreamOrgs: cfg.UpstreamOrgs,
				Entrypoints:  cfg.Entrypoints,
				LogLevel:     cfg.LogLevel,
			}, nil
		},

		LoggerFactory: func(level string) (cmd.Logger, error) {
			log, err := logadapter.NewZapAdapterForLevel(level)
			if err != nil {
				return nil, err
			}
			return log, nil
		},

		GatewayFactory: func(dir string, upstreamOrgs []string, log cmd.Logger) domain.GitGateway {
			return git.NewGateway(dir, runner.NewExecRunner(), upstreamOrgs, log)
		},

		PrompterFactory: func() domain.Prompter {
			return prompt.NewHuhPrompter()
		},

		OutputFactory: func(w io.Writer) domain.UserOutput {
			return term.NewPrinterWithOutput(w)
		},

		ResolverFactory: func(gitGateway domain.GitGateway, prompter domain.Prompter, log cmd.Logger) domain.Resolver {
			return usecases.NewLessonResolver(gitGateway, prompter, log)
		},

		ScannerFactory: func() domain.CourseScanner {
			return course.NewScanner(afero.NewOsFs())
		},

		RendererFactory: func() (domain.MarkdownRenderer, error) {
			renderer, err := term.NewRenderer()
			if err != nil {
				return nil, err
			}
			return renderer, nil
		},

		RunnerFactory: func() domain.ProcessRunner {
			return runner.NewExecRunner()
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
