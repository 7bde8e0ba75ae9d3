package network_test

import (
	"fmt"

	"github.com/matzehuels/friendgraph/pkg/network"
)

func ExampleGraph_basic() {
	g := network.New()
	_ = g.AddUser("alice")
	_ = g.AddUser("bob")
	_ = g.AddUser("carol")
	_ = g.Befriend("alice", "bob")
	_ = g.Befriend("alice", "carol")

	fmt.Println("Users:", g.UserCount())
	fmt.Println("Friendships:", g.FriendshipCount())
	fmt.Println("Friends of alice:", g.Friends("alice"))
	fmt.Println("Friends of bob:", g.Friends("bob"))
	// Output:
	// Users: 3
	// Friendships: 2
	// Friends of alice: [bob carol]
	// Friends of bob: [alice]
}

func ExampleGraph_RemoveUser() {
	g := network.New()
	_ = g.AddUser("alice")
	_ = g.AddUser("bob")
	_ = g.Befriend("alice", "bob")

	_ = g.RemoveUser("bob")
	fmt.Println("bob present:", g.HasUser("bob"))
	fmt.Println("Friends of alice:", g.Friends("alice"))
	// Output:
	// bob present: false
	// Friends of alice: []
}

func ExampleGraph_Repair() {
	g := network.New()
	g.SetFriends("alice", []string{"bob", "bob"})
	g.SetFriends("bob", nil)

	fmt.Println("valid:", g.Validate() == nil)
	fmt.Println("fixes:", g.Repair())
	fmt.Println("Friends of bob:", g.Friends("bob"))
	// Output:
	// valid: false
	// fixes: 2
	// Friends of bob: [alice]
}
