package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/provide-io/rankpack/internal/config"
	"github.com/provide-io/rankpack/internal/reveal"
	"github.com/provide-io/rankpack/internal/staging"
	"github.com/provide-io/rankpack/pkg/logging"
	"github.com/provide-io/rankpack/pkg/resourcepack"
	"github.com/provide-io/rankpack/pkg/resourcepack/assembler"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

const version = "0.1.0"

const defaultManifest = "rankpack.yaml"

type buildFlags struct {
	manifestPath string
	saveRoot     string
	packName     string
	images       []string
	format       string
	checksum     string
	reveal       bool
	keepStaging  bool
	logLevel     string
}

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "rankpack %s\n", version)
	fmt.Fprintf(out, "Built: %s\n", getBuildTimestamp())
}

func newRootCmd() *cobra.Command {
	var versionFlag bool

	rootCmd := &cobra.Command{
		Use:           "rankpack",
		Short:         "Assemble rank icon resource packs",
		Long:          `Turn rank images into a zipped resource pack with a bitmap font that maps each rank to a private-use character.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(newBuildCmd(), newInitCmd(), newVersionCmd())
	return rootCmd
}

func newBuildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a resource pack",
		Example: `  rankpack build -c rankpack.yaml
  rankpack build -o out -n MyRanks -i vip=images/vip.png -i mvp=images/mvp.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.manifestPath, "config", "c", "", "Path to a build manifest (YAML or JSON)")
	cmd.Flags().StringVarP(&flags.saveRoot, "output", "o", "", "Directory the pack folder and archive are written to")
	cmd.Flags().StringVarP(&flags.packName, "name", "n", "", "Pack name")
	cmd.Flags().StringArrayVarP(&flags.images, "image", "i", nil, "Rank image as label=path (repeatable)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Archive format (zip, tar.gz, tar.bz2)")
	cmd.Flags().StringVar(&flags.checksum, "checksum", "", "Archive checksum algorithm (sha256, sha512, adler32)")
	cmd.Flags().BoolVar(&flags.reveal, "reveal", false, "Open the mappings file when done")
	cmd.Flags().BoolVar(&flags.keepStaging, "keep-staging", false, "Keep staged images after the build")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json[:level])")
	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter build manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultManifest
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing manifest")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func runBuild(cmd *cobra.Command, flags buildFlags) error {
	level, source := logging.ResolveLevel(flags.logLevel)
	output, closeOutput := logging.Output(cmd.ErrOrStderr())
	defer closeOutput()
	logger := logging.New(logging.Config{Name: "rankpack", Level: level, Output: output})
	logger.Debug("🔍 Log level resolved", "level", level, "source", source)

	cfg, err := loadManifest(flags)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	if _, err := staging.Sweep(cfg.Intake.StagingDir, staging.StaleAfter, logger); err != nil {
		logger.Warn("⚠️ Failed to sweep staging sessions", "error", err)
	}

	asm, err := assembler.New(assembler.Options{
		Logger:      logger,
		Settings:    settings,
		StagingRoot: cfg.Intake.StagingDir,
		KeepStaging: flags.keepStaging,
	})
	if err != nil {
		return err
	}

	req := assembler.Request{SaveRoot: cfg.SaveRoot, PackName: cfg.Name}
	for _, e := range cfg.Entries {
		req.Entries = append(req.Entries, assembler.Entry{Label: e.Label, ImagePath: e.Image})
	}

	result, err := asm.Assemble(req)
	if err != nil {
		if flags.keepStaging {
			if dir := asm.StagingDir(); dir != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "📁 Staged images kept in %s\n", dir)
			}
		} else if cerr := asm.Cleanup(); cerr != nil {
			logger.Warn("⚠️ Failed to remove staging directory", "error", cerr)
		}
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	if flags.reveal {
		mappings := filepath.Join(result.PackDir, resourcepack.MappingsFile)
		if err := reveal.File(mappings); err != nil {
			logger.Warn("⚠️ Could not open mappings file", "path", mappings, "error", err)
		}
	}
	return nil
}

// loadManifest reads the manifest, if any, and lays the CLI flags over it.
func loadManifest(flags buildFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.manifestPath != "" {
		loaded, err := config.Load(flags.manifestPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.saveRoot != "" {
		cfg.SaveRoot = flags.saveRoot
	}
	if flags.packName != "" {
		cfg.Name = flags.packName
	}
	if flags.format != "" {
		cfg.Archive.Format = flags.format
	}
	if flags.checksum != "" {
		cfg.Archive.Checksum = flags.checksum
	}
	for _, raw := range flags.images {
		entry, err := parseImageFlag(raw)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Entries = append(cfg.Entries, entry)
	}
	return cfg, nil
}

// parseImageFlag splits "label=path" at the first '='.
func parseImageFlag(raw string) (config.EntryConfig, error) {
	l, path, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(l) == "" || strings.TrimSpace(path) == "" {
		return config.EntryConfig{}, fmt.Errorf("--image %q: expected label=path", raw)
	}
	return config.EntryConfig{Label: l, Image: path}, nil
}

func printResult(out io.Writer, result *assembler.Result) {
	fmt.Fprintf(out, "✅ Pack %s written to %s\n", result.Pack.Name, result.ArchivePath)
	fmt.Fprintf(out, "🔐 %s\n", result.Checksum)
	if len(result.Pack.Assignments) == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCODE POINT\tCHAR")
	for _, a := range result.Pack.Assignments {
		fmt.Fprintf(tw, "%s\tU+%s\t%s\n", a.Label, a.Hex(), a.Char())
	}
	tw.Flush()
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var stageErr *rperrors.StageError
		if errors.As(err, &stageErr) {
			fmt.Fprintf(stderr, "❌ %s: %v\n", stageErr.Stage, stageErr.Err)
		} else {
			fmt.Fprintf(stderr, "❌ %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
