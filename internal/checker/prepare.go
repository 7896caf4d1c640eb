package checker

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/puzpuzpuz/xsync/v3"
)

var ErrCheckerCompile = errors.New("checker compilation failed")

// Preparer turns a checker path into an Invoker. Sources in a compiled
// language are built once into a cache keyed by their content hash.
type Preparer struct {
	rules    compiler.Rules
	compiler *compiler.Compiler
	cacheDir string
	logger   *slog.Logger

	locks *xsync.MapOf[string, *sync.Mutex]
}

func NewPreparer(rules compiler.Rules, comp *compiler.Compiler, cacheDir string, logger *slog.Logger) *Preparer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preparer{
		rules:    rules,
		compiler: comp,
		cacheDir: cacheDir,
		logger:   logger,
		locks:    xsync.NewMapOf[string, *sync.Mutex](),
	}
}

// Prepare resolves how to launch the checker at path. A file whose
// extension matches no compiler rule is executed directly.
func (p *Preparer) Prepare(ctx context.Context, path string) (*Invoker, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve checker path: %w", err)
	}

	rule, err := p.rules.ForFile(path)
	if err != nil {
		p.logger.Debug("checker is used as an executable", slog.String("path", path))
		return NewInvoker([]string{path}, p.logger), nil
	}
	if rule.Interpreted() {
		prep, err := p.compiler.Compile(ctx, rule, path, "")
		if err != nil {
			return nil, err
		}
		return NewInvoker(prep.Argv, p.logger), nil
	}

	sha, err := fileSha256(path, rule)
	if err != nil {
		return nil, fmt.Errorf("failed to hash checker: %w", err)
	}

	mu, _ := p.locks.LoadOrCompute(sha, func() *sync.Mutex { return &sync.Mutex{} })
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(p.cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checker cache directory: %w", err)
	}
	source := filepath.Join(p.cacheDir, sha+filepath.Ext(path))
	stem := filepath.Join(p.cacheDir, sha)

	if prep, ok, err := p.compiler.Existing(rule, source, stem); err != nil {
		return nil, err
	} else if ok {
		p.logger.Debug("checker found in cache", slog.String("sha256", sha))
		return NewInvoker(prep.Argv, p.logger), nil
	}

	if err := copyFile(path, source); err != nil {
		return nil, fmt.Errorf("failed to copy checker source: %w", err)
	}
	prep, err := p.compiler.Compile(ctx, rule, source, stem)
	if err != nil {
		return nil, fmt.Errorf("failed to compile checker: %w", err)
	}
	if prep.Log != nil {
		if err := writeLog(stem+".log.json", prep); err != nil {
			p.logger.Warn("failed to store checker compile log", slog.Any("error", err))
		}
	}
	if !prep.Ready {
		code := int64(-1)
		if prep.Log != nil {
			code = prep.Log.ExitCode
		}
		return nil, fmt.Errorf("%w: exit code %d", ErrCheckerCompile, code)
	}

	p.logger.Info("checker compiled", slog.String("sha256", sha), slog.String("compiler", rule.Name))
	return NewInvoker(prep.Argv, p.logger), nil
}

// fileSha256 also hashes the compile command so that changing compiler
// flags invalidates the cache.
func fileSha256(path string, rule compiler.Rule) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	fmt.Fprintf(h, "\x00%s\x00%s\x00%s", rule.Options, rule.ExecutableFile, rule.Runtime)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeLog(path string, prep compiler.Prepared) error {
	data, err := json.Marshal(prep.Log)
	if err != nil {
		return fmt.Errorf("failed to marshal runtime data: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
