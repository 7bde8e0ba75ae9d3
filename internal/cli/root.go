package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/friendgraph/internal/config"
	"github.com/matzehuels/friendgraph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Friendgraph keeps a small social network of users and friendships",
		Long: `Friendgraph is a CLI for a persisted social network: add and remove users,
link and unlink friends, find the shortest chain between two users and get
friend suggestions from mutual friends. Each command is one transaction
against the configured store.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return invalid("unknown command %q", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printLine(msgNoCommand)
			return errNoCommand
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return invalid("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/friendgraph/config.toml)")
	pf.StringVar(&c.flags.data, "data", "", "snapshot file or database directory")
	pf.StringVar(&c.flags.backend, "backend", "", "store backend: file, memory, redis, mongo or badger")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the query cache")
	pf.BoolVar(&c.flags.strict, "strict", false, "exit non-zero on invalid invocations (2) and unknown users (3)")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")

	// Network commands
	root.AddCommand(c.addUserCommand())
	root.AddCommand(c.removeUserCommand())
	root.AddCommand(c.addFriendCommand())
	root.AddCommand(c.removeFriendCommand())
	root.AddCommand(c.showFriendsCommand())
	root.AddCommand(c.shortestPathCommand())
	root.AddCommand(c.recommendCommand())
	root.AddCommand(c.mutualFriendsCommand())

	// Administration
	root.AddCommand(c.listUsersCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and applies the global flags on top.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
	}

	cfg, used, err := config.Load(c.flags.config)
	if err != nil {
		return err
	}
	if used != "" {
		c.Logger.Debug("loaded config", "path", used)
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Store.Path = c.flags.data
	}
	if flags.Changed("backend") {
		cfg.Store.Backend = c.flags.backend
		if err := cfg.Validate(); err != nil {
			return invalid("%v", err)
		}
	}
	c.cfg = cfg
	return nil
}

// exactArgs is cobra.ExactArgs reporting an invalid invocation.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return invalid("%s takes %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
