// Package directory ships the autocomplete list of well-known name→symbol
// pairs used by the add command.
package directory

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed directory.yaml
var raw []byte

// Pair is one directory row.
type Pair struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"sym"`
}

var pairs []Pair

func init() {
	var doc struct {
		Pairs []Pair `yaml:"pairs"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		panic("directory: embedded yaml: " + err.Error())
	}
	pairs = doc.Pairs
}

// Pairs returns the directory in file order.
func Pairs() []Pair {
	out := make([]Pair, len(pairs))
	copy(out, pairs)
	return out
}

// Lookup resolves a display name to its symbol, case-insensitively on
// exact names.
func Lookup(name string) (string, bool) {
	for _, p := range pairs {
		if strings.EqualFold(p.Name, name) {
			return p.Symbol, true
		}
	}
	return "", false
}
