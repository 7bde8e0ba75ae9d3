package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/friendgraph/pkg/snapshot"
	"github.com/matzehuels/friendgraph/pkg/social"
)

// listUsersCommand creates the "list_users" command.
func (c *CLI) listUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list_users",
		Short: "List every user with its friend count",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				users, err := svc.Users(ctx)
				if err != nil {
					return err
				}
				if len(users) == 0 {
					c.printInfo("The network is empty")
					return nil
				}
				c.printUserTable(users)
				return nil
			})
		},
	}
}

// statsCommand creates the "stats" command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the network",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				st, err := svc.Stats(ctx)
				if err != nil {
					return err
				}
				c.printKeyValue("Users", StyleNumber.Render(fmt.Sprint(st.Users)))
				c.printKeyValue("Friendships", StyleNumber.Render(fmt.Sprint(st.Friendships)))
				c.printKeyValue("Isolated", StyleNumber.Render(fmt.Sprint(st.Isolated)))
				c.printKeyValue("Avg friends", StyleNumber.Render(fmt.Sprintf("%.2f", st.AvgDegree)))
				if st.MostFriends != "" {
					c.printKeyValue("Most friends", fmt.Sprintf("%s (%d)", st.MostFriends, st.MaxDegree))
				}
				return nil
			})
		},
	}
}

// checkCommand creates the "check" command.
func (c *CLI) checkCommand() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report broken friendship invariants in the stored snapshot",
		Long: `Check reports friend entries that break the network invariants: one-sided
friendships, duplicate entries, self friendships and friends that are not
users. With --repair the problems are fixed and the snapshot is saved.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				violations, err := svc.Check(ctx)
				if err != nil {
					return err
				}
				if len(violations) == 0 {
					c.printSuccess("No problems found")
					return nil
				}
				for _, v := range violations {
					c.printWarning("%v", v)
				}
				if !repair {
					c.printDetail("Run with --repair to fix %d problem(s)", len(violations))
					return nil
				}
				fixes, err := svc.Repair(ctx)
				if err != nil {
					return err
				}
				c.printSuccess("Applied %d fix(es)", fixes)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "fix the problems and save the snapshot")
	return cmd
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the network as JSON",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				prog := newProgress(c.Logger)
				g, err := svc.Snapshot(ctx)
				if err != nil {
					return err
				}
				if output == "" {
					return snapshot.WriteJSON(g, c.Out)
				}
				if err := snapshot.ExportJSON(g, output); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Exported %d users", g.UserCount()))
				c.printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// importCommand creates the "import" command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the network with a JSON export",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			g, err := snapshot.ImportJSON(args[0])
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				if err := svc.Replace(ctx, g); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Imported %d users", g.UserCount()))
				c.printSuccess("Imported %d users and %d friendships", g.UserCount(), g.FriendshipCount())
				return nil
			})
		},
	}
}
