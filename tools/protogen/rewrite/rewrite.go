// Package rewrite fixes the import paths of generated code.
//
// The compiler derives Go import paths from the proto source root, so a file
// generated from foo/bar.proto references its siblings through the bare
// proto-relative path ("foo"). Once the generated tree is relocated under the
// consuming repository's output directory, those references must instead use
// the fully qualified installed path ("<module>/<out>/foo"). The rewrite is
// a line-based transformation of the import blocks; parsing the full Go
// grammar is unnecessary for the shape of compiler output.
package rewrite

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Stub returns the proto-relative import path the compiler is told to emit
// for protos in the given directory (slash-separated, relative to the proto
// root). Protos at the root itself have no directory to name a package
// after, so they borrow the base name of the output directory.
func Stub(dir, outPath string) string {
	if dir == "." || dir == "" {
		return path.Base(outPath)
	}
	return dir
}

// Stubs maps every proto file to its stub import path. The compile package
// passes this mapping to the compiler so that generated cross-references are
// exactly the paths this package knows how to rewrite.
func Stubs(protos []string, outPath string) map[string]string {
	stubs := make(map[string]string, len(protos))
	for _, p := range protos {
		stubs[p] = Stub(path.Dir(p), outPath)
	}
	return stubs
}

// Rewriter rewrites the sibling imports of generated files.
type Rewriter struct {
	module  string
	outPath string
	// deps maps a compiled proto file to its direct dependencies within
	// the compiled set.
	deps map[string][]string
}

// New builds a Rewriter for the given consuming module from the descriptor
// set emitted by the compiler invocation.
func New(module, outPath string, descriptorSet []byte) (*Rewriter, error) {
	if module == "" {
		return nil, fmt.Errorf("module path is required to rewrite imports")
	}
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(descriptorSet, set); err != nil {
		return nil, fmt.Errorf("unmarshaling descriptor set: %w", err)
	}

	compiled := make(map[string]bool, len(set.GetFile()))
	for _, file := range set.GetFile() {
		compiled[file.GetName()] = true
	}
	deps := make(map[string][]string, len(set.GetFile()))
	for _, file := range set.GetFile() {
		for _, dep := range file.GetDependency() {
			// Dependencies outside the compiled set (well-known types,
			// include-path protos) resolve through their own modules.
			if !compiled[dep] {
				continue
			}
			deps[file.GetName()] = append(deps[file.GetName()], dep)
		}
	}
	return &Rewriter{module: module, outPath: outPath, deps: deps}, nil
}

// Dir walks the generated tree and rewrites every generated Go file in
// place. Files that do not trace back to a compiled proto are left alone.
func (r *Rewriter) Dir(genDir string) error {
	return filepath.WalkDir(genDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".go") {
			return nil
		}
		relPath, err := filepath.Rel(genDir, p)
		if err != nil {
			return err
		}
		protoFile, ok := protoForGenerated(filepath.ToSlash(relPath))
		if !ok {
			return nil
		}
		if err := r.rewriteFile(p, protoFile); err != nil {
			return fmt.Errorf("rewriting %s: %w", p, err)
		}
		return nil
	})
}

func (r *Rewriter) rewriteFile(p, protoFile string) error {
	content, err := os.ReadFile(p)
	if err != nil {
		return err
	}
	rewritten, changed := r.Rewrite(protoFile, content)
	if !changed {
		return nil
	}
	return os.WriteFile(p, rewritten, 0644)
}

var importLine = regexp.MustCompile(`^(\s*(?:[A-Za-z_][A-Za-z0-9_]*\s+)?")([^"]+)("\s*)$`)

// Rewrite transforms the content of a file generated from protoFile,
// replacing every import of a sibling stub path with the installed package
// path. It reports whether anything changed. Content outside import
// statements is passed through byte for byte.
func (r *Rewriter) Rewrite(protoFile string, content []byte) ([]byte, bool) {
	targets := r.targets(protoFile)
	if len(targets) == 0 {
		return content, false
	}

	lines := strings.Split(string(content), "\n")
	changed := false
	inImportBlock := false
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "import ("):
			inImportBlock = true
		case inImportBlock && strings.HasPrefix(line, ")"):
			inImportBlock = false
		case inImportBlock || strings.HasPrefix(line, "import "):
			trimmed := strings.TrimPrefix(line, "import ")
			m := importLine.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			target, ok := targets[m[2]]
			if !ok {
				continue
			}
			lines[i] = strings.TrimSuffix(line, trimmed) + m[1] + target + m[3]
			changed = true
		}
	}
	if !changed {
		return content, false
	}
	return []byte(strings.Join(lines, "\n")), true
}

// targets returns the stub → installed-path mapping for the sibling
// dependencies of protoFile. Same-directory dependencies share a package
// with the generated file and need no import at all.
func (r *Rewriter) targets(protoFile string) map[string]string {
	targets := map[string]string{}
	ownDir := path.Dir(protoFile)
	for _, dep := range r.deps[protoFile] {
		dir := path.Dir(dep)
		if dir == ownDir {
			continue
		}
		targets[Stub(dir, r.outPath)] = r.installedPath(dir)
	}
	return targets
}

func (r *Rewriter) installedPath(dir string) string {
	if dir == "." || dir == "" {
		return path.Join(r.module, r.outPath)
	}
	return path.Join(r.module, r.outPath, dir)
}

var generatedSuffixes = []string{".pb.gw.go", "_grpc.pb.go", ".pb.go"}

// protoForGenerated maps a generated file path back to the proto file it was
// generated from.
func protoForGenerated(genPath string) (string, bool) {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(genPath, suffix) {
			return strings.TrimSuffix(genPath, suffix) + ".proto", true
		}
	}
	return "", false
}
