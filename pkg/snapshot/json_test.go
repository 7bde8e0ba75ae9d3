package snapshot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleGraph(t), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"name": "alice"`,
		`"friends": []`,
		`"a": "alice",`,
		`"b": "carol"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteJSON output missing %s:\n%s", want, out)
		}
	}
	if n := strings.Count(out, `"a": `); n != 3 {
		t.Errorf("friendships listed %d times, want 3", n)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := sampleGraph(t)
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !got.Equal(g) {
		t.Errorf("ReadJSON(WriteJSON(g)) differs: %s", Marshal(got))
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"malformed", `{"users": [`, nil},
		{"empty name", `{"users":[{"name":"","friends":[]}]}`, nil},
		{"name with space", `{"users":[{"name":"a b","friends":[]}]}`, nil},
		{"duplicate user", `{"users":[{"name":"a"},{"name":"a"}]}`, network.ErrDuplicateUser},
		{"asymmetric", `{"users":[{"name":"a","friends":["b"]},{"name":"b","friends":[]}]}`, network.ErrAsymmetricFriendship},
		{"dangling", `{"users":[{"name":"a","friends":["zed"]}]}`, network.ErrDanglingFriend},
		{"self", `{"users":[{"name":"a","friends":["a"]}]}`, network.ErrSelfFriendship},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !ferrors.Is(err, ferrors.ErrCodeInvalidSnapshot) {
				t.Fatalf("ReadJSON error = %v, want INVALID_SNAPSHOT", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadJSON error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	g := sampleGraph(t)

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !got.Equal(g) {
		t.Error("imported graph differs from exported one")
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ImportJSON error = %v, want not-exist", err)
	}
}
