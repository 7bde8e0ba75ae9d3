package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network/query"
	"github.com/matzehuels/friendgraph/pkg/social"
)

// withService opens the engine for the duration of fn.
func (c *CLI) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *social.Service) error) error {
	ctx := cmd.Context()
	svc, closeFn, err := c.openService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, svc)
}

// report prints a mutation outcome.
func (c *CLI) report(out social.Outcome) {
	c.printLine(out.Report())
	if out.NotFound() {
		c.notFound = true
	}
}

// queryFailed prints the not-found message for a query that referenced an
// absent user and swallows the error. Other errors pass through.
func (c *CLI) queryFailed(err error) error {
	if ferrors.Is(err, ferrors.ErrCodeUserNotFound) {
		c.printLine(social.MsgUserNotFound)
		c.notFound = true
		return nil
	}
	return err
}

// mutationCommand builds a command that runs one mutation on its arguments.
func (c *CLI) mutationCommand(use, short string, nargs int, run func(ctx context.Context, svc *social.Service, args []string) (social.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				out, err := run(ctx, svc, args)
				if err != nil {
					return err
				}
				c.report(out)
				return nil
			})
		},
	}
}

func (c *CLI) addUserCommand() *cobra.Command {
	return c.mutationCommand("add_user <name>", "Add a user with no friends", 1,
		func(ctx context.Context, svc *social.Service, args []string) (social.Outcome, error) {
			return svc.AddUser(ctx, args[0])
		})
}

func (c *CLI) removeUserCommand() *cobra.Command {
	return c.mutationCommand("remove_user <name>", "Remove a user and all of its friendships", 1,
		func(ctx context.Context, svc *social.Service, args []string) (social.Outcome, error) {
			return svc.RemoveUser(ctx, args[0])
		})
}

func (c *CLI) addFriendCommand() *cobra.Command {
	return c.mutationCommand("add_friend <user1> <user2>", "Make two users friends", 2,
		func(ctx context.Context, svc *social.Service, args []string) (social.Outcome, error) {
			return svc.AddFriendship(ctx, args[0], args[1])
		})
}

func (c *CLI) removeFriendCommand() *cobra.Command {
	return c.mutationCommand("remove_friend <user1> <user2>", "End the friendship of two users", 2,
		func(ctx context.Context, svc *social.Service, args []string) (social.Outcome, error) {
			return svc.RemoveFriendship(ctx, args[0], args[1])
		})
}

func (c *CLI) showFriendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show_friends <name>",
		Short: "List a user's friends",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				friends, err := svc.ShowFriends(ctx, args[0])
				if err != nil {
					return c.queryFailed(err)
				}
				c.printLine(social.FriendsReport(args[0], friends))
				return nil
			})
		},
	}
}

func (c *CLI) shortestPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shortest_path <start> <end>",
		Short: "Find the shortest chain of friendships between two users",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				path, err := svc.ShortestPath(ctx, args[0], args[1])
				if errors.Is(err, query.ErrNoPath) {
					c.printLine(social.MsgNoConnection)
					return nil
				}
				if err != nil {
					return c.queryFailed(err)
				}
				c.printLine(social.PathReport(path))
				return nil
			})
		},
	}
}

func (c *CLI) recommendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <name>",
		Short: "Suggest friends of friends, most mutual friends first",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				suggestions, err := svc.Recommend(ctx, args[0])
				if err != nil {
					return c.queryFailed(err)
				}
				c.printLine(social.SuggestionsReport(args[0], suggestions))
				return nil
			})
		},
	}
}

func (c *CLI) mutualFriendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mutual_friends <user1> <user2>",
		Short: "List the friends two users have in common",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				mutual, err := svc.MutualFriends(ctx, args[0], args[1])
				if err != nil {
					return c.queryFailed(err)
				}
				if len(mutual) == 0 {
					c.printLine("No mutual friends.")
					return nil
				}
				c.printLine("Mutual friends: " + strings.Join(mutual, " "))
				return nil
			})
		},
	}
}
