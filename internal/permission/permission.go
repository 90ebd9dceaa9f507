package permission

import (
	"sort"
	"strings"

	"github.com/frahmantamala/naming-registry/internal"
)

// Grant is one module-scoped permission inside a relationship.
type Grant struct {
	Module string `json:"module"`
	Level  string `json:"level"`
}

// Set holds the permissions of one relationship, keyed by module. A
// relationship carries at most one level per module, so the map is the
// natural in-memory shape; the comma-joined string form exists only at
// the store boundary.
type Set map[string]string

func NewSet() Set {
	return make(Set)
}

// Grant sets the level for a module, replacing any existing level.
func (s Set) Grant(module, level string) {
	s[module] = level
}

// ClearModule removes every entry for the given module. Clearing a module
// that is not present is a no-op.
func (s Set) ClearModule(module string) {
	delete(s, module)
}

func (s Set) Level(module string) (string, bool) {
	level, ok := s[module]
	return level, ok
}

func (s Set) Grants() []Grant {
	grants := make([]Grant, 0, len(s))
	for module, level := range s {
		grants = append(grants, Grant{Module: module, Level: level})
	}
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].Module < grants[j].Module
	})
	return grants
}

// Encode serializes the set as comma-joined "module:level" tokens, sorted
// lexicographically so equivalent sets always produce byte-identical
// strings. The empty set encodes to "".
func (s Set) Encode() string {
	tokens := make([]string, 0, len(s))
	for module, level := range s {
		tokens = append(tokens, module+":"+level)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}

// ParseSet decodes the stored string form. The empty string decodes to the
// empty set. Stored data is assumed well-formed on write, but a corrupt
// read must surface an error rather than panic or guess.
func ParseSet(serialized string) (Set, error) {
	set := NewSet()
	if serialized == "" {
		return set, nil
	}

	for _, token := range strings.Split(serialized, ",") {
		module, level, ok := strings.Cut(token, ":")
		if !ok || module == "" || level == "" {
			return nil, internal.NewMalformedTokenError(token)
		}
		set[module] = level
	}
	return set, nil
}
