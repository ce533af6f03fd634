package mediawiki

import "strings"

// Namespace mirrors one entry of action=query&meta=siteinfo's
// `namespaces` map, with its aliases folded in from the sibling
// `namespacealiases` list.
type Namespace struct {
	ID        int
	Name      string
	Canonical string
	Aliases   []string
}

// namespaceTable indexes namespaces by every name they can be addressed
// by (canonical, localized, and alias), case-insensitively, plus by id.
type namespaceTable struct {
	byID   map[int]Namespace
	byName map[string]Namespace
}

func newNamespaceTable() *namespaceTable {
	return &namespaceTable{
		byID:   make(map[int]Namespace),
		byName: make(map[string]Namespace),
	}
}

func (t *namespaceTable) add(ns Namespace) {
	t.byID[ns.ID] = ns
	if ns.Name != "" {
		t.byName[strings.ToLower(ns.Name)] = ns
	}
	if ns.Canonical != "" {
		t.byName[strings.ToLower(ns.Canonical)] = ns
	}
	for _, alias := range ns.Aliases {
		t.byName[strings.ToLower(alias)] = ns
	}
}

func (t *namespaceTable) byIDLookup(id int) (Namespace, bool) {
	ns, ok := t.byID[id]
	return ns, ok
}

func (t *namespaceTable) lookup(name string) (Namespace, bool) {
	ns, ok := t.byName[strings.ToLower(name)]
	return ns, ok
}

// addAlias registers an alias entry (from namespacealiases). If the
// namespace with that id is already in the table, the alias is appended
// to its Aliases and the entry is re-indexed; otherwise the alias maps
// to a bare Namespace carrying only the id, and a namespace added later
// does not pick the alias up. fetchNamespaces adds every namespace
// before any alias.
func (t *namespaceTable) addAlias(id int, alias string) {
	t.byName[strings.ToLower(alias)] = Namespace{ID: id}
	if ns, ok := t.byID[id]; ok {
		ns.Aliases = append(ns.Aliases, alias)
		t.add(ns)
	}
}
