package dirtree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zjrosen/webwalker/internal/log"
)

// frame is an open ancestor while parsing: the column of its bullet and the
// node it created.
type frame struct {
	indent int
	id     NodeID
}

// ParseTree rebuilds a tree from the report format produced by Render and
// returns its root. The column of each line's "-" bullet gives its depth;
// blank lines and the no-subdirectories marker are ignored.
//
// Ascending several levels in one line attaches to the nearest enclosing
// ancestor. A line at or left of the root's column after the first line is a
// *MalformedLineError. Duplicate names abort the parse; nodes created before
// the failure stay in f and the caller is expected to Reset it.
func ParseTree(f *Forest, lines []string) (*Node, error) {
	var (
		root  *Node
		stack []frame
	)

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == NoSubdirectoriesMarker {
			continue
		}

		indent := strings.Index(line, "-")
		if indent < 0 {
			return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "missing bullet"}
		}
		name := strings.TrimSpace(line[indent+1:])
		if name == "" {
			return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "missing name"}
		}

		if root == nil {
			n, err := f.Create(name, RootLevel)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			root = n
			stack = append(stack, frame{indent: indent, id: n.id})
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "second root"}
		}

		n, err := f.CreateChild(stack[len(stack)-1].id, name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		stack = append(stack, frame{indent: indent, id: n.id})
	}

	if root == nil {
		return nil, fmt.Errorf("parse tree: no entries: %w", ErrMalformedTree)
	}

	log.Debug(log.CatParse, "parsed tree", "root", root.name, "lines", len(lines), "nodes", f.Len())
	return root, nil
}

// ParseTreeReader reads r line by line and calls ParseTree.
func ParseTreeReader(f *Forest, r io.Reader) (*Node, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}
	return ParseTree(f, lines)
}
