package snapshot

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

func sampleGraph(t *testing.T) *network.Graph {
	t.Helper()
	g := network.New()
	for _, u := range []string{"carol", "alice", "bob", "dave"} {
		if err := g.AddUser(u); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range [][2]string{{"carol", "alice"}, {"alice", "bob"}, {"bob", "carol"}} {
		if err := g.Befriend(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleGraph(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "alice 2 carol bob\n" +
		"bob 2 alice carol\n" +
		"carol 2 alice bob\n" +
		"dave 0\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := Marshal(network.New()); len(got) != 0 {
		t.Errorf("Marshal(empty) = %q, want empty", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string][]string
	}{
		{
			name:  "empty",
			input: "",
			want:  map[string][]string{},
		},
		{
			name:  "basic",
			input: "a 1 b\nb 1 a\n",
			want:  map[string][]string{"a": {"b"}, "b": {"a"}},
		},
		{
			name:  "isolated user",
			input: "a 0\n",
			want:  map[string][]string{"a": {}},
		},
		{
			name:  "blank lines and extra spaces",
			input: "\n  a   2  b c\n\n\tb 1 a\r\nc 1 a",
			want:  map[string][]string{"a": {"b", "c"}, "b": {"a"}, "c": {"a"}},
		},
		{
			name:  "later line replaces earlier",
			input: "a 1 b\nb 1 a\na 0\n",
			want:  map[string][]string{"a": {}, "b": {"a"}},
		},
		{
			name:  "friend order preserved",
			input: "x 3 c a b\n",
			want:  map[string][]string{"x": {"c", "a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if g.UserCount() != len(tt.want) {
				t.Errorf("UserCount = %d, want %d", g.UserCount(), len(tt.want))
			}
			for user, friends := range tt.want {
				if !g.HasUser(user) {
					t.Errorf("missing user %s", user)
					continue
				}
				if got := g.Friends(user); !slices.Equal(got, friends) {
					t.Errorf("Friends(%s) = %v, want %v", user, got, friends)
				}
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine string
	}{
		{"missing count", "a 1 b\nb\n", "line 2"},
		{"non-numeric count", "a x b\n", "line 1"},
		{"negative count", "a -1\n", "line 1"},
		{"too few friends", "a 1 b\nb 2 a\n", "line 2"},
		{"too many friends", "\n\na 0 b\n", "line 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !ferrors.Is(err, ferrors.ErrCodeInvalidSnapshot) {
				t.Errorf("error code = %q, want INVALID_SNAPSHOT", ferrors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("error %q does not mention %q", err, tt.wantLine)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestDecodeReadError(t *testing.T) {
	_, err := Decode(failingReader{})
	if err == nil || err.Error() != "disk on fire" {
		t.Errorf("Decode error = %v, want read error", err)
	}
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)
	first := Marshal(g)

	loaded, err := Unmarshal(first)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !loaded.Equal(g) {
		t.Error("decoded graph differs from original")
	}
	if second := Marshal(loaded); !bytes.Equal(first, second) {
		t.Errorf("round trip not stable:\n%s\nvs\n%s", first, second)
	}
}

func TestRoundTripAfterMutations(t *testing.T) {
	g := sampleGraph(t)
	_ = g.RemoveUser("bob")
	_ = g.Befriend("dave", "alice")
	_ = g.Unfriend("carol", "alice")

	loaded, err := Unmarshal(Marshal(g))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !loaded.Equal(g) {
		t.Errorf("round trip changed graph: %s", Marshal(loaded))
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("Validate after round trip: %v", err)
	}
}
