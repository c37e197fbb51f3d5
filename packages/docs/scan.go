package docs

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Extensions lists the file extensions treated as docs.
var Extensions = []string{".md", ".mdx"}

// Options controls how routes are computed.
type Options struct {
	BaseURL       string
	RouteBasePath string
}

// Doc is one markdown document.
type Doc struct {
	ID     string   `json:"id"`
	Source string   `json:"source"` // slash separated, relative to the docs directory
	File   string   `json:"-"`
	Title  string   `json:"title"`
	Slug   string   `json:"slug"`
	Route  string   `json:"route"`
	Links  []string `json:"links,omitempty"`
}

type frontMatter struct {
	ID    string `yaml:"id" json:"id" toml:"id"`
	Title string `yaml:"title" json:"title" toml:"title"`
	Slug  string `yaml:"slug" json:"slug" toml:"slug"`
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// IsDoc reports whether name has a doc extension.
func IsDoc(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ParseDoc builds a Doc from the contents of the file at source.
func ParseDoc(source string, data []byte, opts Options) (*Doc, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid front matter: %w", source, err)
	}

	dir := path.Dir(source)
	if dir == "." {
		dir = ""
	}
	dir = stripPathNumberPrefixes(dir)
	name := StripNumberPrefix(strings.TrimSuffix(path.Base(source), path.Ext(source)))

	base := name
	if fm.ID != "" {
		base = fm.ID
	}

	doc := &Doc{
		ID:     path.Join(dir, base),
		Source: source,
		Slug:   docSlug(dir, base, fm.Slug),
	}
	doc.Route = JoinRoute(opts.BaseURL, opts.RouteBasePath, doc.Slug)

	heading, links := inspect(body)
	doc.Links = links
	switch {
	case fm.Title != "":
		doc.Title = fm.Title
	case heading != "":
		doc.Title = heading
	default:
		doc.Title = name
	}
	return doc, nil
}

var (
	numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*`)
	datePrefix   = regexp.MustCompile(`^(\d{2}|\d{4})[-_.]\d{2}[-_.]\d{2}`)
)

// StripNumberPrefix removes an ordering prefix such as "01-" or "2_" from a
// file or directory name. Date prefixes like "2023-11-02" are kept, and so is
// a name that is nothing but the prefix.
func StripNumberPrefix(name string) string {
	if datePrefix.MatchString(name) {
		return name
	}
	loc := numberPrefix.FindStringIndex(name)
	if loc == nil || loc[1] == len(name) {
		return name
	}
	return name[loc[1]:]
}

func stripPathNumberPrefixes(p string) string {
	if p == "" {
		return p
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = StripNumberPrefix(part)
	}
	return strings.Join(parts, "/")
}

func docSlug(dir, base, declared string) string {
	switch {
	case strings.HasPrefix(declared, "/"):
		return path.Clean(declared)
	case declared != "":
		return path.Join("/", dir, declared)
	case base == "index" || strings.EqualFold(base, "readme") || (dir != "" && base == path.Base(dir)):
		return path.Join("/", dir)
	default:
		return path.Join("/", dir, base)
	}
}

// inspect returns the first level one heading and every link destination of body.
func inspect(body []byte) (string, []string) {
	var heading string
	var links []string

	root := md.Parser().Parse(text.NewReader(body))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && heading == "" {
				heading = nodeText(node, body)
			}
		case *ast.Link:
			links = append(links, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	return heading, links
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return b.String()
}

// Index is the set of docs found by Scan.
type Index struct {
	Dir  string
	Docs []*Doc

	byID     map[string]*Doc
	bySource map[string]*Doc
	byRoute  map[string]*Doc
}

// NewIndex indexes docs, rejecting duplicate ids and routes.
func NewIndex(dir string, docs []*Doc) (*Index, error) {
	idx := &Index{
		Dir:      dir,
		byID:     make(map[string]*Doc, len(docs)),
		bySource: make(map[string]*Doc, len(docs)),
		byRoute:  make(map[string]*Doc, len(docs)),
	}

	sorted := append([]*Doc(nil), docs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Source < sorted[j].Source })

	for _, d := range sorted {
		if other, ok := idx.byID[d.ID]; ok {
			return nil, fmt.Errorf("duplicate doc id %q in %s and %s", d.ID, other.Source, d.Source)
		}
		if other, ok := idx.byRoute[d.Route]; ok {
			return nil, fmt.Errorf("duplicate route %q in %s and %s", d.Route, other.Source, d.Source)
		}
		idx.byID[d.ID] = d
		idx.bySource[d.Source] = d
		idx.byRoute[d.Route] = d
	}
	idx.Docs = sorted
	return idx, nil
}

// Scan parses every doc under dir.
func Scan(dir string, opts Options) (*Index, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("docs directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs directory: %s is not a directory", dir)
	}

	var docs []*Doc
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != dir && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsDoc(name) {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read doc: %w", err)
		}
		doc, err := ParseDoc(filepath.ToSlash(rel), data, opts)
		if err != nil {
			return err
		}
		doc.File = p
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewIndex(dir, docs)
}

// ByID returns the doc with the given id.
func (idx *Index) ByID(id string) (*Doc, bool) {
	d, ok := idx.byID[id]
	return d, ok
}

// BySource returns the doc at the slash separated path relative to the docs directory.
func (idx *Index) BySource(source string) (*Doc, bool) {
	d, ok := idx.bySource[path.Clean(source)]
	return d, ok
}

// HasRoute reports whether a doc is served at route.
func (idx *Index) HasRoute(route string) bool {
	_, ok := idx.byRoute[NormalizeRoute(route)]
	return ok
}

// IDs returns the doc ids in source order.
func (idx *Index) IDs() []string {
	ids := make([]string, len(idx.Docs))
	for i, d := range idx.Docs {
		ids[i] = d.ID
	}
	return ids
}

// Routes returns the doc routes in source order.
func (idx *Index) Routes() []string {
	routes := make([]string, len(idx.Docs))
	for i, d := range idx.Docs {
		routes[i] = d.Route
	}
	return routes
}

// JoinRoute joins URL path segments into an absolute route without a
// trailing slash.
func JoinRoute(parts ...string) string {
	return path.Join(append([]string{"/"}, parts...)...)
}

// NormalizeRoute strips the query, fragment and trailing slash of a route.
func NormalizeRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	return JoinRoute(route)
}
