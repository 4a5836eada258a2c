package menu

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/remeh/sizedwaitgroup"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/ui/control"
)

// MenuRef names a menu layout file in a group file.
type MenuRef struct {
	Name string `toml:"name"`
	File string `toml:"file"`
}

// GroupFile is the decoded form of a group file.
type GroupFile struct {
	Menus []MenuRef    `toml:"menu"`
	Trees []TreeConfig `toml:"tree"`
}

// Group is the set of menus and trees declared by one group file.
type Group struct {
	name  string
	path  string
	menus map[string]*Menu
	trees map[string]*Tree
	order []string
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Path returns the file the group was loaded from.
func (g *Group) Path() string { return g.path }

// Menu returns the named menu.
func (g *Group) Menu(name string) (*Menu, bool) {
	m, ok := g.menus[name]
	return m, ok
}

// Tree returns the named tree.
func (g *Group) Tree(name string) (*Tree, bool) {
	t, ok := g.trees[name]
	return t, ok
}

// Trees returns the tree names in file order.
func (g *Group) Trees() []string { return g.order }

// MenuNames returns the menu names, sorted.
func (g *Group) MenuNames() []string {
	names := make([]string, 0, len(g.menus))
	for n := range g.menus {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadGroup reads the group file at path and builds its menus and trees.
// Layout files are decoded concurrently with at most workers in flight;
// workers <= 0 means one per CPU.
func LoadGroup(fsys loader.FileSystem, name, path string, env control.Env, workers int) (*Group, error) {
	var gf GroupFile
	if err := loader.DecodeTOML(fsys, path, &gf); err != nil {
		return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: %v", name, err)
	}

	seen := make(map[string]bool, len(gf.Menus))
	for _, ref := range gf.Menus {
		if ref.Name == "" || ref.File == "" {
			return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: menu entry needs name and file", name)
		}
		if seen[ref.Name] {
			return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: duplicate menu %q", name, ref.Name)
		}
		seen[ref.Name] = true
	}

	layouts, err := decodeLayouts(fsys, path, gf.Menus, workers)
	if err != nil {
		return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: %v", name, err)
	}

	g := &Group{
		name:  name,
		path:  path,
		menus: make(map[string]*Menu, len(layouts)),
		trees: make(map[string]*Tree, len(gf.Trees)),
	}
	for i, l := range layouts {
		// The group file name wins over the layout's own.
		l.Name = gf.Menus[i].Name
		m, err := NewMenu(l, env)
		if err != nil {
			if critical.Is(err) {
				return nil, err
			}
			return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: %v", name, err)
		}
		g.menus[l.Name] = m
	}

	for _, tc := range gf.Trees {
		if _, dup := g.trees[tc.Name]; dup {
			return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: duplicate tree %q", name, tc.Name)
		}
		t, err := NewTree(name, tc, g.Menu)
		if err != nil {
			if critical.Is(err) {
				return nil, err
			}
			return nil, critical.New("Menu Group", ErrMalformedConfig, "group %q: %v", name, err)
		}
		g.trees[tc.Name] = t
		g.order = append(g.order, tc.Name)
	}
	return g, nil
}

func decodeLayouts(fsys loader.FileSystem, groupPath string, refs []MenuRef, workers int) ([]Layout, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	layouts := make([]Layout, len(refs))
	errs := make([]error, len(refs))

	wg := sizedwaitgroup.New(workers)
	for i, ref := range refs {
		wg.Add()
		go func(i int, file string) {
			defer wg.Done()
			errs[i] = loader.DecodeYAML(fsys, loader.Resolve(groupPath, file), &layouts[i])
		}(i, ref.File)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("menu %q: %w", refs[i].Name, err)
		}
	}
	return layouts, nil
}
