// SPDX-License-Identifier: Apache-2.0

// Package commands wires gg's cobra root command: a best-effort scan for
// gg's own flags ahead of the tool-spec chain, internal/tokenizer to split
// that chain into resolver.ToolRequests, and the resolve → materialise →
// compose → spawn pipeline (pkg/resolver, pkg/cache, pkg/executor).
package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toolforge/gg/internal/buildinfo"
	"github.com/toolforge/gg/internal/config"
	"github.com/toolforge/gg/internal/tokenizer"
	"github.com/toolforge/gg/pkg/cache"
	"github.com/toolforge/gg/pkg/erx"
	"github.com/toolforge/gg/pkg/executor"
	"github.com/toolforge/gg/pkg/exit"
	"github.com/toolforge/gg/pkg/logx"
	"github.com/toolforge/gg/pkg/registry"
	"github.com/toolforge/gg/pkg/resolver"
	"github.com/toolforge/gg/pkg/target"
)

// traceIDKeyType is an unexported context-key type so TraceIDKey never
// collides with a key another package might store in the same context.
type traceIDKeyType struct{}

// TraceIDKey is the context key main.go stamps a fresh trace id under.
var TraceIDKey = traceIDKeyType{}

var rootCmd = &cobra.Command{
	Use:                "gg [flags] <tool>[@ver][-dist][+tag]…[:tool…] [args…]",
	Short:              "gg resolves, caches and runs polyglot command-line tools",
	Long:               "gg resolves a tool-spec chain like node@18:java@17, materialises each tool into a content-addressed cache, composes their PATH and environment, and spawns the requested program.",
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runRoot,
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(checkUpdateCmd)
}

// Execute runs gg's root command and terminates the process with the
// resulting exit code — a clean child run exits with the child's own
// status, an internal failure exits with the taxonomy's mapped code.
func Execute(ctx context.Context) {
	rootCmd.SetArgs(os.Args[1:])
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		wrapped := erx.FromToolError(err)
		erx.TerminateIfError(ctx, wrapped, *logx.As())
	}
}

// flagSet is the result of scanning os.Args for gg's own flags before the
// first tool-spec token, since DisableFlagParsing hands RunE raw argv.
type flagSet struct {
	verbosity       int
	showVersion     bool
	externalizeLogs bool
	localCache      bool
	osOverride      string
	archOverride    string
	rest            []string
}

// scanFlags consumes leading `-v`/`-vv`/`-vvv`, `-V`, `-w`, `-l`, `--os`,
// `--arch` tokens, stopping at the first token that isn't one of gg's own
// flags — that token and everything after it is the tool-spec chain.
func scanFlags(argv []string) flagSet {
	fs := flagSet{}

	i := 0
	for i < len(argv) {
		tok := argv[i]
		switch {
		case tok == "-v":
			fs.verbosity = max(fs.verbosity, 1)
		case tok == "-vv":
			fs.verbosity = max(fs.verbosity, 2)
		case tok == "-vvv":
			fs.verbosity = max(fs.verbosity, 3)
		case tok == "-V" || tok == "--version":
			fs.showVersion = true
		case tok == "-w":
			fs.externalizeLogs = true
		case tok == "-l":
			fs.localCache = true
		case tok == "--os" && i+1 < len(argv):
			fs.osOverride = argv[i+1]
			i++
		case strings.HasPrefix(tok, "--os="):
			fs.osOverride = strings.TrimPrefix(tok, "--os=")
		case tok == "--arch" && i+1 < len(argv):
			fs.archOverride = argv[i+1]
			i++
		case strings.HasPrefix(tok, "--arch="):
			fs.archOverride = strings.TrimPrefix(tok, "--arch=")
		default:
			fs.rest = argv[i:]
			return fs
		}
		i++
	}

	return fs
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func runRoot(cmd *cobra.Command, argv []string) error {
	fs := scanFlags(argv)

	config.Initialize()
	cfg := config.Get()
	cfg.Verbosity = fs.verbosity
	cfg.ExternalizeLogs = fs.externalizeLogs
	cfg.Log.FileLogging = fs.externalizeLogs
	cfg.UseLocalCache = fs.localCache
	cfg.OSOverride = fs.osOverride
	cfg.ArchOverride = fs.archOverride
	cfg.Log.Level = logx.LevelForVerbosity(fs.verbosity)
	config.Set(cfg)
	if err := logx.WithConfig(&cfg.Log, map[string]string{"traceId": traceIDFrom(cmd.Context())}); err != nil {
		return err
	}

	if fs.showVersion {
		out, err := buildinfo.Get().Format(buildinfo.FormatYAML)
		if err != nil {
			return err
		}
		cmd.Println(out)
		return nil
	}

	if len(fs.rest) == 0 {
		return cmd.Help()
	}

	requests, args := tokenizer.Tokenize(fs.rest)

	t := target.Detect()
	if cfg.OSOverride != "" {
		if overridden, ok := target.ApplyOSOverride(t, cfg.OSOverride); ok {
			t = overridden
		} else {
			logx.As().Warn().Str("os", cfg.OSOverride).Msg("unrecognized --os override, falling back to detection")
		}
	}
	if cfg.ArchOverride != "" {
		if overridden, ok := target.ApplyArchOverride(t, cfg.ArchOverride); ok {
			t = overridden
		} else {
			logx.As().Warn().Str("arch", cfg.ArchOverride).Msg("unrecognized --arch override, falling back to detection")
		}
	}

	projectDir, err := os.Getwd()
	if err != nil {
		return err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	cacheRoot := cache.Root(cfg.CacheDirOverride, cfg.UseLocalCache, homeDir)
	c := cache.New(cacheRoot)

	reg := registry.Default()
	res := resolver.New(reg, t, projectDir)

	ctx := cmd.Context()
	plan, err := res.Resolve(ctx, requests)
	if err != nil {
		return err
	}

	materialized, err := executor.MaterializeAll(ctx, c, plan, nil)
	if err != nil {
		return err
	}

	inheritedPath := os.Getenv("PATH")
	pathValue := executor.ComposePath(materialized, inheritedPath)
	envValue := executor.ComposeEnv(materialized)

	code, runErr := executor.Run(ctx, materialized, args, envValue, pathValue)
	if runErr != nil {
		if code != 0 {
			exit.Code(code).TerminateProcess()
		}
		return runErr
	}

	exit.NormalTermination.TerminateProcess()
	return nil
}

func traceIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}
