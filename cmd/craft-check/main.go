// Command craft-check installs the bundled content mods into a fresh
// registry set and reports registered content and rule violations.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"craftcore/internal/core"
	"craftcore/mods/meteor"
	"craftcore/pkg/domain"
	"craftcore/pkg/modapi"
)

type modReport struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Items   int    `yaml:"items"`
	Tiles   int    `yaml:"tiles"`
	Groups  int    `yaml:"groups"`
	Recipes int    `yaml:"recipes"`
	Rules   int    `yaml:"rules"`
}

type recipeReport struct {
	ID          string `yaml:"id"`
	Index       int    `yaml:"index"`
	Result      string `yaml:"result"`
	Ingredients int    `yaml:"ingredients"`
	Stations    int    `yaml:"stations"`
	Environment string `yaml:"environment,omitempty"`
}

type violationReport struct {
	Rule     string `yaml:"rule"`
	Severity string `yaml:"severity"`
	Recipe   string `yaml:"recipe,omitempty"`
	Message  string `yaml:"message"`
}

type report struct {
	API        string            `yaml:"api"`
	Mods       []modReport       `yaml:"mods"`
	Items      int               `yaml:"items"`
	Tiles      int               `yaml:"tiles"`
	Groups     int               `yaml:"groups"`
	Recipes    []recipeReport    `yaml:"recipes"`
	Violations []violationReport `yaml:"violations,omitempty"`
}

func bundledMods() []modapi.Mod {
	return []modapi.Mod{meteor.New()}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "craft-check",
		Usage:   "validate the bundled crafting content registries",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the YAML report to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit non-zero when any rule violation was recorded",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	service := core.NewService(core.WithLogger(slog.Default()))
	for _, mod := range bundledMods() {
		if _, err := service.InstallMod(ctx, mod); err != nil {
			return fmt.Errorf("mod installation failed: %w", err)
		}
	}

	rep := buildReport(service)

	var out io.Writer = cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := yaml.NewEncoder(out)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	if cmd.Bool("strict") && len(rep.Violations) > 0 {
		return fmt.Errorf("%d rule violation(s) recorded", len(rep.Violations))
	}
	return nil
}

func buildReport(service *core.Service) report {
	rep := report{
		API:    modapi.Version,
		Items:  service.Content().ItemCount(),
		Tiles:  service.Content().TileCount(),
		Groups: service.Groups().Count(),
	}
	for _, meta := range service.RegisteredMods() {
		rep.Mods = append(rep.Mods, modReport{
			Name:    meta.Name,
			Version: meta.Version,
			Items:   meta.Items,
			Tiles:   meta.Tiles,
			Groups:  meta.Groups,
			Recipes: meta.Recipes,
			Rules:   meta.Rules,
		})
	}
	for _, handle := range service.Recipes().Recipes() {
		rep.Recipes = append(rep.Recipes, summarize(service, handle))
	}
	for _, v := range service.Recipes().Violations() {
		rep.Violations = append(rep.Violations, violationReport{
			Rule:     v.Rule,
			Severity: string(v.Severity),
			Recipe:   string(v.Recipe),
			Message:  v.Message,
		})
	}
	return rep
}

func summarize(service *core.Service, handle domain.RecipeHandle) recipeReport {
	result := "none"
	if handle.Definition.Result != nil {
		name, ok := service.Content().LookupItem(handle.Definition.Result.Item)
		if !ok {
			name = fmt.Sprintf("item#%d", handle.Definition.Result.Item)
		}
		result = fmt.Sprintf("%s x%d", name, handle.Definition.Result.Count)
	}
	env := ""
	if handle.Definition.Environment != 0 {
		env = handle.Definition.Environment.String()
	}
	return recipeReport{
		ID:          string(handle.ID),
		Index:       handle.Index,
		Result:      result,
		Ingredients: len(handle.Definition.Ingredients),
		Stations:    len(handle.Definition.Stations),
		Environment: env,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("craft-check failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
