package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/malonaz/repo-config/go/repoconfig"
	"github.com/malonaz/repo-config/go/subprocess"
)

// protoSubmodules are the shared proto dependencies every API repository
// pulls in as git submodules.
var protoSubmodules = []struct {
	path string
	url  string
}{
	{"submodules/api-common-protos", "https://github.com/googleapis/api-common-protos.git"},
	{"submodules/api-common", "https://github.com/malonaz/api-common.git"},
}

// finalize turns the rendered skeleton into a git repository with an initial
// commit, adding the proto submodules for API repositories first.
func finalize(ctx context.Context, dir string, repoType repoconfig.Type) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); os.IsNotExist(err) {
		if err := git(ctx, dir, "init"); err != nil {
			return err
		}
		log.Info("initialized git repository", "dir", dir)
	}

	if repoType == repoconfig.TypeAPI {
		for _, submodule := range protoSubmodules {
			if err := git(ctx, dir, "submodule", "add", submodule.url, submodule.path); err != nil {
				return err
			}
		}
		log.Info("added proto submodules", "count", len(protoSubmodules))
	}

	if err := git(ctx, dir, "add", "-A"); err != nil {
		return err
	}
	if err := git(ctx, dir, "commit", "-m", "Initial commit"); err != nil {
		return err
	}
	return nil
}

func git(ctx context.Context, dir string, args ...string) error {
	if _, err := subprocess.New("git", args...).WithDir(dir).Run(ctx); err != nil {
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}
