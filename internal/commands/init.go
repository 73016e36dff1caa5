package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/catexplorer/internal/config"
)

// envExampleName is written next to the config as a template for .env.
const envExampleName = ".env.example"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default catexplorer.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(w io.Writer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if err := checkWritable(cfgPath, force); err != nil {
		return err
	}
	if err := config.Save(cfgPath, config.Default()); err != nil {
		return err
	}

	envPath := filepath.Join(dir, envExampleName)
	if err := checkWritable(envPath, force); err != nil {
		return err
	}
	if err := os.WriteFile(envPath, []byte(envExample()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", envExampleName, err)
	}

	fmt.Fprintf(w, "Initialized catexplorer config at %s\n", cfgPath)
	return nil
}

func checkWritable(path string, force bool) error {
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

func envExample() string {
	var b strings.Builder
	b.WriteString("# Copy to .env to override catexplorer.yaml.\n")
	for _, name := range []string{
		config.EnvAddr,
		config.EnvLogLevel,
		config.EnvLogFormat,
		config.EnvCurrency,
		config.EnvIncludeIncoming,
	} {
		fmt.Fprintf(&b, "# %s=\n", name)
	}
	return b.String()
}
