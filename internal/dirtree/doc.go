// Package dirtree models the discovered directory structure of a web
// application as a forest of named nodes.
//
// A Forest owns every node it creates and enforces that a name appears at
// most once across the whole forest, not just among siblings. Nodes refer
// to their parent by NodeID; children are kept sorted by name so that every
// traversal is alphabetical and deterministic.
//
// Two parsers grow a forest:
//
//   - Populate attaches the entries of an unstructured scraped list (the
//     output of a browser console href dump) as children of one node.
//   - ParseTree rebuilds a whole tree from the indented report produced by
//     Render.
//
// The report format is one bullet per node, two spaces per depth:
//
//	- /
//	  - /admin
//	    - /admin/users
//	  - /login
//
// A Forest is not safe for concurrent use.
package dirtree
