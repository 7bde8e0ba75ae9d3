package snapshot

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

// maxLineSize bounds a single snapshot line. A user with many friends makes
// for a long line, so the scanner default of 64 KiB is raised.
const maxLineSize = 16 << 20

// Encode writes g to w in the line format.
func Encode(w io.Writer, g *network.Graph) error {
	bw := bufio.NewWriter(w)
	for _, u := range g.Users() {
		friends := g.Neighbors(u)
		bw.WriteString(u)
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(len(friends)))
		for _, f := range friends {
			bw.WriteByte(' ')
			bw.WriteString(f)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Marshal returns the line encoding of g.
func Marshal(g *network.Graph) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, g) // writes to a bytes.Buffer do not fail
	return buf.Bytes()
}

// Decode reads a graph in the line format from r.
//
// A malformed line yields an error coded INVALID_SNAPSHOT naming the
// 1-based line number. Read failures are returned as they are.
func Decode(r io.Reader) (*network.Graph, error) {
	g := network.New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, ferrors.New(ferrors.ErrCodeInvalidSnapshot,
				"line %d: missing friend count for %q", lineNo, fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return nil, ferrors.New(ferrors.ErrCodeInvalidSnapshot,
				"line %d: invalid friend count %q", lineNo, fields[1])
		}
		if got := len(fields) - 2; got != n {
			return nil, ferrors.New(ferrors.ErrCodeInvalidSnapshot,
				"line %d: %s declares %d friends but lists %d", lineNo, fields[0], n, got)
		}
		g.SetFriends(fields[0], fields[2:])
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "line %d", lineNo+1)
		}
		return nil, err
	}
	return g, nil
}

// Unmarshal decodes the line encoding in b. See [Decode].
func Unmarshal(b []byte) (*network.Graph, error) {
	return Decode(bytes.NewReader(b))
}
