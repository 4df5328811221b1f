package dirtree

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/zjrosen/webwalker/internal/log"
)

// scrapeNoise is removed from the whole blob before splitting it into lines.
// It is the punctuation a browser console adds when an array of hrefs is
// copied out as an object.
var scrapeNoise = strings.NewReplacer("[", "", "]", "", ",", "", `"`, "", " ", "")

// quotedSeparator matches the comma after a quoted array element, so a
// console array pasted on a single line still yields one entry per element.
var quotedSeparator = regexp.MustCompile(`"\s*,`)

// PopulateResult summarises one Populate call.
type PopulateResult struct {
	// Added lists the names attached, in ascending order.
	Added []string
	// Skipped counts candidates dropped as self references, fragments,
	// already registered names, or collisions after host stripping.
	Skipped int
}

// Populator turns scraped href lists into children of a node.
type Populator struct {
	host string // lower-cased host[:port]; empty disables stripping
}

// NewPopulator returns a Populator that strips the scheme and host of
// hostname from entries. hostname may be a bare host ("example.com",
// "example.com:8443") or a URL ("https://example.com"). Empty disables
// stripping.
func NewPopulator(hostname string) *Populator {
	return &Populator{host: normalizeHost(hostname)}
}

// Hostname returns the host entries are stripped of, or "".
func (p *Populator) Hostname() string { return p.host }

// Normalize cleans raw into the sorted set of candidate entries: one entry
// per line or per quoted array element, noise characters removed, duplicates
// and blank lines collapsed, matching scheme+host prefixes stripped.
func (p *Populator) Normalize(raw string) []string {
	raw = quotedSeparator.ReplaceAllString(raw, "\n")
	lines := strings.Split(scrapeNoise.Replace(raw), "\n")

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen[p.stripHost(line)] = struct{}{}
	}

	entries := make([]string, 0, len(seen))
	for entry := range seen {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	slices.Sort(entries)
	return entries
}

// Populate attaches every new entry of raw as a child of node. Self
// references, entries containing '#', and names registered anywhere in the
// forest are skipped; a bad entry never aborts the batch. Calling Populate
// again with the same text adds nothing.
func (p *Populator) Populate(f *Forest, node NodeID, raw string) (PopulateResult, error) {
	parent, ok := f.Node(node)
	if !ok {
		return PopulateResult{}, fmt.Errorf("populate: %w", ErrUnknownNode)
	}

	var result PopulateResult
	for _, entry := range p.Normalize(raw) {
		if entry == parent.name || strings.Contains(entry, "#") || f.Contains(entry) {
			result.Skipped++
			continue
		}

		child, err := f.Create(entry, parent.level+LevelStep)
		if err != nil {
			var dup *DuplicateNameError
			if errors.As(err, &dup) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("populate %q: %w", parent.name, err)
		}
		if err := f.AddChild(node, child.id); err != nil {
			return result, fmt.Errorf("populate %q: %w", parent.name, err)
		}
		result.Added = append(result.Added, entry)
	}

	log.Debug(log.CatPopulate, "populated directory",
		"node", parent.name,
		"added", len(result.Added),
		"skipped", result.Skipped)
	return result, nil
}

// stripHost removes a scheme+host prefix matching p.host, keeping the path,
// query and fragment. Entries for other hosts are returned unchanged.
func (p *Populator) stripHost(entry string) string {
	if p.host == "" {
		return entry
	}

	u, err := url.Parse(entry)
	if err != nil || u.Host == "" || !strings.EqualFold(u.Host, p.host) {
		return entry
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "":
	default:
		return entry
	}

	// Cut at the end of the authority so the remainder keeps its original
	// escaping.
	rest := entry[strings.Index(entry, "//")+2:]
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[i:]
	} else {
		rest = ""
	}
	if rest == "" || rest[0] != '/' {
		rest = "/" + rest
	}
	return rest
}

func normalizeHost(hostname string) string {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return ""
	}
	if strings.Contains(hostname, "://") {
		if u, err := url.Parse(hostname); err == nil && u.Host != "" {
			return strings.ToLower(u.Host)
		}
	}
	return strings.ToLower(strings.TrimSuffix(hostname, "/"))
}
