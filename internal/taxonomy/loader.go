package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed classes.yaml
var defaultClasses []byte

// Registry is the set of weakness classes a benchmark measures.
// It is read-only once loaded.
type Registry struct {
	classes []Class
	byID    map[string]Class
}

// DefaultRegistry returns the built-in registry. The embedded file is
// validated by tests, so a parse failure here is a programming error.
func DefaultRegistry() *Registry {
	reg, err := ParseRegistry(defaultClasses)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: embedded classes.yaml is invalid: %v", err))
	}
	return reg
}

// LoadRegistry reads a classes file from disk.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classes file: %w", err)
	}
	reg, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return reg, nil
}

// ParseRegistry builds a registry from YAML. Ids are normalised with
// NormalizeID and must be unique.
func ParseRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing classes: %w", err)
	}

	reg := &Registry{byID: make(map[string]Class, len(f.Classes))}
	for i, c := range f.Classes {
		c.ID = NormalizeID(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("class #%d: missing id", i+1)
		}
		if strings.ContainsAny(c.ID, `/\`) {
			return nil, fmt.Errorf("class %q: id must not contain path separators", c.ID)
		}
		if _, dup := reg.byID[c.ID]; dup {
			return nil, fmt.Errorf("class %q: duplicate id", c.ID)
		}
		reg.byID[c.ID] = c
		reg.classes = append(reg.classes, c)
	}

	sort.Slice(reg.classes, func(i, j int) bool {
		return reg.classes[i].ID < reg.classes[j].ID
	})
	return reg, nil
}

// IDs returns every class id in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.classes))
	for i, c := range r.classes {
		ids[i] = c.ID
	}
	return ids
}

// Classes returns every class in id order.
func (r *Registry) Classes() []Class {
	out := make([]Class, len(r.classes))
	copy(out, r.classes)
	return out
}

// Lookup returns the class with the given id.
func (r *Registry) Lookup(id string) (Class, bool) {
	c, ok := r.byID[NormalizeID(id)]
	return c, ok
}

// Contains reports whether id names a registered class.
func (r *Registry) Contains(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Len returns the number of registered classes.
func (r *Registry) Len() int { return len(r.classes) }

var cweNumber = regexp.MustCompile(`^(?i:cwe)?[-_ ]?(\d+)$`)

// NormalizeID maps the spellings scanners emit ("78", "cwe-78", "CWE_78")
// onto the canonical "CWE-78". Anything else is returned trimmed.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if m := cweNumber.FindStringSubmatch(id); m != nil {
		return "CWE-" + m[1]
	}
	return id
}
