package social

import (
	"fmt"
	"strings"

	"github.com/matzehuels/friendgraph/pkg/network/query"
)

// Kind identifies the outcome of a mutation.
type Kind string

// Mutation outcomes. None of them is an error: soft precondition failures
// such as an existing user are reported, not returned as errors.
const (
	UserAdded      Kind = "user_added"
	UserExists     Kind = "user_exists"
	UserRemoved    Kind = "user_removed"
	UserNotFound   Kind = "user_not_found"
	UsersNotFound  Kind = "users_not_found"
	Befriended     Kind = "befriended"
	AlreadyFriends Kind = "already_friends"
	SelfFriendship Kind = "self_friendship"
	Unfriended     Kind = "unfriended"
	NotFriends     Kind = "not_friends"
)

// Fixed report lines.
const (
	MsgUserNotFound   = "User not found."
	MsgUsersNotFound  = "One or both users not found."
	MsgAlreadyFriends = "They're already friends!"
	MsgSelfFriendship = "Users cannot befriend themselves."
	MsgNotFriends     = "They weren't friends."
	MsgNoConnection   = "No connection found."
)

// Outcome is the result of a mutation: what happened and to whom.
type Outcome struct {
	Kind  Kind     `json:"outcome"`
	Users []string `json:"users"`
}

// NotFound reports whether the mutation failed because a user was absent.
func (o Outcome) NotFound() bool {
	return o.Kind == UserNotFound || o.Kind == UsersNotFound
}

// Report renders the outcome as the one-line message shown to users.
func (o Outcome) Report() string {
	switch o.Kind {
	case UserAdded:
		return fmt.Sprintf("%s joined the network!", o.user(0))
	case UserExists:
		return fmt.Sprintf("%s already exists!", o.user(0))
	case UserRemoved:
		return fmt.Sprintf("User %s removed.", o.user(0))
	case UserNotFound:
		return MsgUserNotFound
	case UsersNotFound:
		return MsgUsersNotFound
	case Befriended:
		return fmt.Sprintf("%s and %s are now friends!", o.user(0), o.user(1))
	case AlreadyFriends:
		return MsgAlreadyFriends
	case SelfFriendship:
		return MsgSelfFriendship
	case Unfriended:
		return fmt.Sprintf("%s and %s are no longer friends.", o.user(0), o.user(1))
	case NotFriends:
		return MsgNotFriends
	default:
		return string(o.Kind)
	}
}

func (o Outcome) user(i int) string {
	if i < len(o.Users) {
		return o.Users[i]
	}
	return ""
}

// FriendsReport renders a friend listing.
func FriendsReport(name string, friends []string) string {
	return strings.TrimSpace(fmt.Sprintf("Friends of %s: %s", name, strings.Join(friends, " ")))
}

// PathReport renders a shortest path. A nil or empty path means the users
// are not connected.
func PathReport(path []string) string {
	if len(path) == 0 {
		return MsgNoConnection
	}
	return "Shortest path: " + strings.Join(path, " ")
}

// SuggestionsReport renders friend suggestions, one per line after a
// heading, in the order given.
func SuggestionsReport(name string, suggestions []query.Suggestion) string {
	if len(suggestions) == 0 {
		return fmt.Sprintf("No friend suggestions for %s.", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Suggestions for %s:", name)
	for _, s := range suggestions {
		fmt.Fprintf(&b, "\n - %s (%d mutual friends)", s.User, s.Mutual)
	}
	return b.String()
}
