package sidebar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/docsite/packages/docs"
)

// ItemType is the kind of a sidebar entry.
type ItemType string

const (
	ItemDoc           ItemType = "doc"
	ItemRef           ItemType = "ref"
	ItemCategory      ItemType = "category"
	ItemLink          ItemType = "link"
	ItemAutogenerated ItemType = "autogenerated"
)

// CategoryLinkType is the kind of page a category label points at.
type CategoryLinkType string

const (
	LinkGeneratedIndex CategoryLinkType = "generated-index"
	LinkDoc            CategoryLinkType = "doc"
)

// Item is one sidebar entry. A plain string in the definition file is a doc
// item with that id.
type Item struct {
	Type    ItemType      `json:"type" yaml:"type"`
	ID      string        `json:"id,omitempty" yaml:"id,omitempty"`
	Label   string        `json:"label,omitempty" yaml:"label,omitempty"`
	Href    string        `json:"href,omitempty" yaml:"href,omitempty"`
	DirName string        `json:"dirName,omitempty" yaml:"dirName,omitempty"`
	Link    *CategoryLink `json:"link,omitempty" yaml:"link,omitempty"`
	Items   []Item        `json:"items,omitempty" yaml:"items,omitempty"`
}

// CategoryLink makes a category label clickable.
type CategoryLink struct {
	Type CategoryLinkType `json:"type" yaml:"type"`
	ID   string           `json:"id,omitempty" yaml:"id,omitempty"`
	Slug string           `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// item without the custom unmarshalers
type plainItem Item

func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*i = Item{Type: ItemDoc, ID: node.Value}
		return nil
	}
	var p plainItem
	if err := node.Decode(&p); err != nil {
		return err
	}
	*i = Item(p)
	return nil
}

func (i *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*i = Item{Type: ItemDoc, ID: id}
		return nil
	}
	var p plainItem
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Item(p)
	return nil
}

// Definition is a parsed sidebar definition file.
type Definition struct {
	Source   string
	Sidebars map[string][]Item
}

// Load reads a YAML (.yaml, .yml) or JSON (.json) sidebar definition.
func Load(file string) (*Definition, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidebar definition: %w", err)
	}

	def, err := Parse(data, strings.ToLower(filepath.Ext(file)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	def.Source = file
	return def, nil
}

// Parse decodes a definition. ext selects the format: ".json" or YAML otherwise.
func Parse(data []byte, ext string) (*Definition, error) {
	sidebars := make(map[string][]Item)
	if ext == ".json" {
		if err := json.Unmarshal(data, &sidebars); err != nil {
			return nil, fmt.Errorf("failed to parse sidebar definition: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &sidebars); err != nil {
			return nil, fmt.Errorf("failed to parse sidebar definition: %w", err)
		}
	}

	def := &Definition{Sidebars: sidebars}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (d *Definition) validate() error {
	var problems []string
	for _, id := range d.IDs() {
		walk(d.Sidebars[id], id, func(where string, item Item) {
			if msg := checkItem(item); msg != "" {
				problems = append(problems, where+": "+msg)
			}
		})
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid sidebar definition:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func checkItem(item Item) string {
	switch item.Type {
	case ItemDoc, ItemRef:
		if item.ID == "" {
			return "id is required"
		}
	case ItemCategory:
		if item.Label == "" {
			return "label is required"
		}
		if item.Link != nil {
			switch item.Link.Type {
			case LinkGeneratedIndex:
			case LinkDoc:
				if item.Link.ID == "" {
					return "link.id is required for a doc link"
				}
			default:
				return fmt.Sprintf("unknown link type %q", item.Link.Type)
			}
		}
	case ItemLink:
		if item.Label == "" || item.Href == "" {
			return "label and href are required"
		}
	case ItemAutogenerated:
		if item.DirName == "" {
			return "dirName is required"
		}
	default:
		return fmt.Sprintf("unknown item type %q", item.Type)
	}
	return ""
}

// walk visits items depth first, describing each position as sidebar[i][j]...
func walk(items []Item, where string, fn func(where string, item Item)) {
	for i, item := range items {
		at := fmt.Sprintf("%s[%d]", where, i)
		fn(at, item)
		walk(item.Items, at, fn)
	}
}

// Has reports whether the definition declares sidebar id.
func (d *Definition) Has(id string) bool {
	_, ok := d.Sidebars[id]
	return ok
}

// IDs returns the sidebar ids in sorted order.
func (d *Definition) IDs() []string {
	ids := make([]string, 0, len(d.Sidebars))
	for id := range d.Sidebars {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DocIDs returns every doc id referenced by the sidebars, including category
// doc links, without duplicates and in sidebar order.
func (d *Definition) DocIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, sidebarID := range d.IDs() {
		walk(d.Sidebars[sidebarID], sidebarID, func(_ string, item Item) {
			switch item.Type {
			case ItemDoc, ItemRef:
				add(item.ID)
			case ItemCategory:
				if item.Link != nil && item.Link.Type == LinkDoc {
					add(item.Link.ID)
				}
			}
		})
	}
	return ids
}

// Routes returns the slugs of generated-index category pages, relative to the
// docs route base path.
func (d *Definition) Routes() []string {
	var routes []string
	for _, sidebarID := range d.IDs() {
		walk(d.Sidebars[sidebarID], sidebarID, func(_ string, item Item) {
			if item.Type == ItemCategory && item.Link != nil && item.Link.Type == LinkGeneratedIndex {
				routes = append(routes, GeneratedIndexSlug(item))
			}
		})
	}
	return routes
}

// GeneratedIndexSlug returns the slug of a category's generated index page.
func GeneratedIndexSlug(item Item) string {
	if item.Link != nil && item.Link.Slug != "" {
		return "/" + strings.Trim(item.Link.Slug, "/")
	}
	return "/category/" + slugify(item.Label)
}

func slugify(label string) string {
	fields := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return r == ' ' || r == '_' || r == '/'
	})
	return strings.Join(fields, "-")
}

// Expand returns a copy of the definition with every autogenerated item
// replaced by the docs found under its directory. docIDs lists all known doc
// ids, slash separated.
func (d *Definition) Expand(docIDs []string) *Definition {
	sorted := append([]string(nil), docIDs...)
	sort.Strings(sorted)

	out := &Definition{Source: d.Source, Sidebars: make(map[string][]Item, len(d.Sidebars))}
	for id, items := range d.Sidebars {
		out.Sidebars[id] = expandItems(items, sorted)
	}
	return out
}

func expandItems(items []Item, docIDs []string) []Item {
	var out []Item
	for _, item := range items {
		switch item.Type {
		case ItemAutogenerated:
			out = append(out, Autogenerate(item.DirName, docIDs)...)
		case ItemCategory:
			item.Items = expandItems(item.Items, docIDs)
			out = append(out, item)
		default:
			out = append(out, item)
		}
	}
	return out
}

// Autogenerate builds the items for the docs under dir: docs directly in dir
// become doc items, subdirectories become categories labeled after the
// directory name. docIDs must be sorted.
func Autogenerate(dir string, docIDs []string) []Item {
	prefix := strings.Trim(path.Clean(dir), "/")
	if prefix == "." {
		prefix = ""
	}
	if prefix != "" {
		prefix += "/"
	}

	var items []Item
	categories := make(map[string]int)
	for _, id := range docIDs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		rest := strings.TrimPrefix(id, prefix)
		sub, _, nested := strings.Cut(rest, "/")
		if !nested {
			items = append(items, Item{Type: ItemDoc, ID: id})
			continue
		}
		if _, ok := categories[sub]; ok {
			continue
		}
		categories[sub] = len(items)
		items = append(items, Item{
			Type:  ItemCategory,
			Label: Label(sub),
			Items: Autogenerate(prefix+sub, docIDs),
		})
	}
	return items
}

// Label turns a file or directory name such as "getting-started" or
// "01_setup" into a display label.
func Label(name string) string {
	name = docs.StripNumberPrefix(strings.TrimSuffix(name, path.Ext(name)))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.TrimSpace(name))
}
