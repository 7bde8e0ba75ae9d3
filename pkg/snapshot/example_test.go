package snapshot_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/friendgraph/pkg/network"
	"github.com/matzehuels/friendgraph/pkg/snapshot"
)

func ExampleEncode() {
	g := network.New()
	_ = g.AddUser("bob")
	_ = g.AddUser("alice")
	_ = g.AddUser("carol")
	_ = g.Befriend("bob", "alice")

	_ = snapshot.Encode(os.Stdout, g)
	// Output:
	// alice 1 bob
	// bob 1 alice
	// carol 0
}

func ExampleDecode() {
	g, err := snapshot.Decode(strings.NewReader("alice 1 bob\nbob 1 alice\n"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.Users(), g.FriendshipCount())

	_, err = snapshot.Decode(strings.NewReader("alice 2 bob\n"))
	fmt.Println(err)
	// Output:
	// [alice bob] 1
	// INVALID_SNAPSHOT: line 1: alice declares 2 friends but lists 1
}
