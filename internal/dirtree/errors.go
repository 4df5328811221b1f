package dirtree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTree is returned by Listing for a node without children.
	ErrEmptyTree = errors.New("no subdirectories")

	// ErrUnknownNode is returned when a NodeID does not belong to the forest,
	// including IDs handed out before a Reset.
	ErrUnknownNode = errors.New("unknown node")

	// ErrEmptyName is returned when creating a node with a blank name.
	ErrEmptyName = errors.New("directory name is empty")

	// ErrAlreadyAttached is returned when a node that already has a parent
	// is attached somewhere else. Parent links never change once set.
	ErrAlreadyAttached = errors.New("directory already has a parent")

	// ErrCycle is returned when an attachment would make a node its own
	// ancestor.
	ErrCycle = errors.New("directory would become its own ancestor")

	// ErrMalformedTree is wrapped by every ParseTree failure caused by the
	// shape of the input rather than by the forest.
	ErrMalformedTree = errors.New("malformed tree report")
)

// maxListedChildren caps how many child names a DuplicateNameError spells out.
const maxListedChildren = 3

// DuplicateNameError is returned when a name is already registered anywhere
// in the forest.
type DuplicateNameError struct {
	Name string
	// Children holds the sorted child names of the existing node, if any.
	Children []string
}

func (e *DuplicateNameError) Error() string {
	if len(e.Children) == 0 {
		return fmt.Sprintf("directory %q already exists", e.Name)
	}
	listed := e.Children
	suffix := ""
	if len(listed) > maxListedChildren {
		suffix = fmt.Sprintf(" and %d more", len(listed)-maxListedChildren)
		listed = listed[:maxListedChildren]
	}
	return fmt.Sprintf("directory %q already exists as a parent of %s%s",
		e.Name, strings.Join(listed, ", "), suffix)
}

// NotFoundError is returned when a name is not a direct child of a node.
type NotFoundError struct {
	Parent string
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q is not a child of %q", e.Name, e.Parent)
}

// MalformedLineError describes a report line ParseTree could not place.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap lets callers match any shape problem with errors.Is(err, ErrMalformedTree).
func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedTree
}
