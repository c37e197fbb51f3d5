// Package diff compares two site descriptors field by field.
package diff

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
)

// Difference is one field whose value differs between two descriptors.
// Path uses the descriptor's own key names, e.g. themeConfig.navbar.items[2].href.
type Difference struct {
	Path  string `json:"path"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

func (d Difference) String() string {
	return fmt.Sprintf("%s: %s -> %s", d.Path, d.Left, d.Right)
}

// Compare returns the differences between a and b in field order. No
// differences means the two descriptors are duplicates.
func Compare(a, b *config.SiteConfig) []Difference {
	var r reporter
	cmp.Equal(a, b, cmp.Reporter(&r))
	return r.diffs
}

// Duplicate reports whether a and b describe the same site.
func Duplicate(a, b *config.SiteConfig) bool {
	return cmp.Equal(a, b)
}

type reporter struct {
	path  cmp.Path
	diffs []Difference
}

func (r *reporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *reporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	vx, vy := r.path.Last().Values()
	r.diffs = append(r.diffs, Difference{
		Path:  formatPath(r.path),
		Left:  formatValue(vx),
		Right: formatValue(vy),
	})
}

func (r *reporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

func formatPath(p cmp.Path) string {
	var b strings.Builder
	for i, step := range p {
		switch s := step.(type) {
		case cmp.StructField:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(fieldName(p[i-1].Type(), s.Name()))
		case cmp.SliceIndex:
			k := s.Key()
			if k < 0 {
				ix, iy := s.SplitKeys()
				k = max(ix, iy)
			}
			fmt.Fprintf(&b, "[%d]", k)
		case cmp.MapIndex:
			fmt.Fprintf(&b, "[%v]", s.Key())
		}
	}
	if b.Len() == 0 {
		return "."
	}
	return b.String()
}

// fieldName returns the json key of field name in struct type t.
func fieldName(t reflect.Type, name string) string {
	if t.Kind() != reflect.Struct {
		return name
	}
	f, ok := t.FieldByName(name)
	if !ok {
		return name
	}
	key, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if key == "" || key == "-" {
		return name
	}
	return key
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "<none>"
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return "<unset>"
		}
		return formatValue(v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			return "[]"
		}
	case reflect.String:
		return fmt.Sprintf("%q", v.String())
	}
	if v.CanInterface() {
		return fmt.Sprintf("%v", v.Interface())
	}
	return v.String()
}
