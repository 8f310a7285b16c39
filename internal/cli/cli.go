// Package cli implements the litetable-schema command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/litetable/litetable-schema/internal/config"
	"github.com/litetable/litetable-schema/internal/instance"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/metastore"
	"github.com/litetable/litetable-schema/internal/migrate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const configFileName = "litetable-schema.hcl"

type cli struct {
	out    io.Writer
	errOut io.Writer

	configFile string
	cfg        *config.Config
	// configFlags are the flags that override a config variable of the same name.
	configFlags map[string]struct{}

	// store replaces the configured store address when set.
	store instance.Store
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	c := &cli{out: out, errOut: errOut}
	return c.execute(ctx, args)
}

func (c *cli) execute(ctx context.Context, args []string) int {
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(c.errOut, "%s: %v\n", errorClass(err), err)
		return 1
	}
	return 0
}

func errorClass(err error) string {
	var partial *migrate.PartialFailureError
	if errors.As(err, &partial) {
		return "MigrationFailedError"
	}
	return litetable.ErrorClass(err)
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "litetable-schema",
		Short:             "Manage LiteTable table layouts",
		Long:              "litetable-schema creates tables and evolves their layouts on a LiteTable store.",
		PersistentPreRunE: c.preRun,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	c.configFlags = make(map[string]struct{})
	fs := root.PersistentFlags()
	fs.StringVar(&c.configFile, "config", "", "`file` to load config from")
	c.configString(fs, "instance", "instance name")
	c.configString(fs, "store-address", "store server host:port, or memory")
	c.configString(fs, "meta-backend", "meta store backend: bbolt or sqlite")
	c.configString(fs, "meta-path", "meta store `directory`")
	c.configString(fs, "journal-path", "migration journal `directory`")
	fs.Int("lock-timeout", 0, "seconds to wait for a table lock")
	c.configFlags["lock-timeout"] = struct{}{}
	fs.Bool("debug", false, "log at debug level")
	c.configFlags["debug"] = struct{}{}
	fs.Bool("leak-detection", false, "report instance handles that are never released")
	c.configFlags["leak-detection"] = struct{}{}

	root.AddCommand(
		c.createTableCommand(),
		c.layoutCommand(),
		c.deleteTableCommand(),
		c.listCommand(),
		c.historyCommand(),
		c.journalCommand(),
		c.serveCommand(),
	)
	return root
}

func (c *cli) configString(fs *pflag.FlagSet, name, usage string) {
	fs.String(name, "", usage)
	c.configFlags[name] = struct{}{}
}

// preRun loads the config file and applies the flags that were set explicitly.
func (c *cli) preRun(cmd *cobra.Command, _ []string) error {
	path := c.configFile
	if path == "" {
		dir, err := litetable.GetLitetableDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, configFileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	var errGrp []error
	cmd.Flags().Visit(func(flg *pflag.Flag) {
		if _, ok := c.configFlags[flg.Name]; !ok {
			return
		}
		if err := cfg.Set(strings.ReplaceAll(flg.Name, "-", "_"), flg.Value.String()); err != nil {
			errGrp = append(errGrp, err)
		}
	})
	if err := errors.Join(errGrp...); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	level := zerolog.WarnLevel
	if cmd.Name() == "serve" {
		level = zerolog.InfoLevel
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: c.errOut})
	return nil
}

func (c *cli) openHandle() (*instance.Handle, error) {
	return instance.Open(&instance.Config{
		Instance:      c.cfg.Instance,
		StoreAddress:  c.cfg.StoreAddress,
		Store:         c.store,
		MetaBackend:   metastore.Backend(c.cfg.MetaBackend),
		MetaPath:      c.cfg.MetaPath,
		JournalPath:   c.cfg.JournalPath,
		LockTimeout:   c.cfg.LockTimeoutDuration(),
		ShardCount:    c.cfg.ShardCount,
		LeakDetection: c.cfg.LeakDetection,
	})
}

// withHandle runs fn with an instance handle released afterwards.
func (c *cli) withHandle(fn func(h *instance.Handle) error) error {
	h, err := c.openHandle()
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to release instance handle")
		}
	}()
	return fn(h)
}

// Main runs the command line and exits with its status.
func Main() {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
