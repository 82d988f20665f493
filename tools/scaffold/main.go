// Command scaffold cuts a new repository of the family: it renders the
// project skeleton for the requested repository type and finalizes it as a
// git repository, ready for a first push.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/malonaz/repo-config/go/flags"
	"github.com/malonaz/repo-config/go/logging"
	"github.com/malonaz/repo-config/go/repoconfig"
	"github.com/malonaz/repo-config/tools/scaffold/template"
	"github.com/malonaz/repo-config/tools/scaffold/write"
)

var opts struct {
	Logging *logging.Opts

	Name        string `long:"name" description:"Name of the new repository" required:"true"`
	Module      string `long:"module" description:"Go module path of the new repository" required:"true"`
	Type        string `long:"type" description:"Repository type: actor, api, app, lib, model" default:"lib"`
	Dir         string `long:"dir" description:"Target directory (defaults to the repository name)"`
	Description string `long:"description" description:"One-line description used in the README" default:""`
	SkipGit     bool   `long:"skip-git" description:"Do not initialize a git repository"`
}

var log *slog.Logger

func main() {
	if err := flags.Parse(&opts); err != nil {
		panic(err)
	}
	if err := logging.Init(opts.Logging); err != nil {
		panic(err)
	}
	log = slog.Default()
	if err := run(context.Background()); err != nil {
		panic(err)
	}
}

// templateOutputs maps template names to the files they produce. Dotfiles
// cannot be embedded under their final name.
var templateOutputs = map[string]string{
	"repo-config.yaml.tmpl": "repo-config.yaml",
	"README.md.tmpl":        "README.md",
	"go.mod.tmpl":           "go.mod",
	"gitignore.tmpl":        ".gitignore",
}

type templateData struct {
	Name        string
	Module      string
	Type        string
	Description string
}

func run(ctx context.Context) error {
	repoType := repoconfig.Type(opts.Type)
	if _, err := repoconfig.Default(repoType); err != nil {
		return err
	}
	dir := opts.Dir
	if dir == "" {
		dir = opts.Name
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("A %s repository.", opts.Type)
	}

	engine, err := template.NewEngine()
	if err != nil {
		return fmt.Errorf("instantiating template engine: %v", err)
	}
	data := &templateData{
		Name:        opts.Name,
		Module:      opts.Module,
		Type:        opts.Type,
		Description: description,
	}

	names, err := engine.Names()
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}
	var files []*write.File
	for _, name := range names {
		output, ok := templateOutputs[name]
		if !ok {
			return fmt.Errorf("template %s has no output mapping", name)
		}
		content, err := engine.Evaluate(name, data)
		if err != nil {
			return fmt.Errorf("evaluating template %s: %w", name, err)
		}
		files = append(files, &write.File{Output: output, Content: []byte(content)})
	}
	if repoType == repoconfig.TypeAPI {
		// API repositories start with an empty proto tree.
		files = append(files, &write.File{Output: "proto/.gitkeep"})
	}

	if err := write.Files(dir, files); err != nil {
		return fmt.Errorf("failed to write files: %w", err)
	}
	log.Info("rendered project skeleton", "dir", dir, "files", len(files))

	if !opts.SkipGit {
		if err := finalize(ctx, dir, repoType); err != nil {
			return fmt.Errorf("finalizing repository: %w", err)
		}
	}

	printChecklist(repoType)
	return nil
}

func printChecklist(repoType repoconfig.Type) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Your %s has been cut!\n", opts.Name)
	fmt.Println()
	fmt.Println("Things left to review:")
	fmt.Println("  * Fill in the README description.")
	fmt.Println("  * Push the initial commit and configure branch protection.")
	if repoType == repoconfig.TypeAPI {
		fmt.Println("  * Add your first proto under proto/ and run protogen.")
	}
	fmt.Println()
}
