package testutil

import (
	"testing"

	"github.com/zjrosen/webwalker/internal/dirtree"
)

// AdminPageLinks is a list of hrefs as copied out of a browser console on
// an admin page: one duplicate, one fragment and one self link.
const AdminPageLinks = `"https://example.com/admin/users",
"https://example.com/admin/settings",
"https://example.com/admin/users",
"https://example.com/admin#top",
"https://example.com/admin"
`

// AppTree is a small web application:
//
//	- /
//	  - /admin
//	    - /admin/settings
//	    - /admin/users
//	  - /login
func AppTree(t *testing.T) (*dirtree.Forest, *dirtree.Node) {
	t.Helper()
	return NewTree(t, "/").
		Dir("/admin", "/login").
		Under("/admin", "/admin/users", "/admin/settings").
		Build()
}

// AppTreeReport is the rendering of AppTree.
const AppTreeReport = `- /
  - /admin
    - /admin/settings
    - /admin/users
  - /login
`
