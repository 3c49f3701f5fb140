package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/cellsolve/internal/odesys"
)

// Default is the bundled reference model used when the caller names none.
const Default = "hodgkin_huxley"

// Models are statically linked and selected by name; there is no runtime
// code loading. New models register here.
var registry = map[string]func() odesys.System{
	"hodgkin_huxley":  func() odesys.System { return NewHodgkinHuxley() },
	"decay":           func() odesys.System { return NewDecay() },
	"vanderpol":       func() odesys.System { return NewVanDerPol() },
	"vanderpol_stiff": func() odesys.System { return NewStiffVanDerPol() },
}

// Names returns the registered model names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh instance of the named model.
func Get(name string) (odesys.System, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %q (registered: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}
