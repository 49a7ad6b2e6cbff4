package document

import (
	"encoding/json"
	"slices"

	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/sphinxpoetry/internal/normalize"
)

// keyOrder records, per table key path, child keys in first-seen order.
type keyOrder struct {
	keys map[string][]string
	seen map[string]map[string]bool
}

func newKeyOrder() *keyOrder {
	return &keyOrder{
		keys: make(map[string][]string),
		seen: make(map[string]map[string]bool),
	}
}

func (o *keyOrder) add(parent []string, key string) {
	table := normalize.KeyPath(parent...)
	if o.seen[table] == nil {
		o.seen[table] = make(map[string]bool)
	}
	if o.seen[table][key] {
		return
	}
	o.seen[table][key] = true
	o.keys[table] = append(o.keys[table], key)
}

// addPath records every step of a dotted path, so "a.b.c" registers "a" under
// the root, "b" under "a" and "c" under "a.b".
func (o *keyOrder) addPath(path []string) {
	for i := range path {
		o.add(path[:i], path[i])
	}
}

// tomlKeyOrder replays the TOML expressions in document order. Keys declared
// inside arrays of tables are not recorded.
func tomlKeyOrder(data []byte) (map[string][]string, error) {
	order := newKeyOrder()

	var p unstable.Parser
	p.Reset(data)

	var table []string
	inArray := false
	for p.NextExpression() {
		expr := p.Expression()
		if expr == nil {
			continue
		}
		switch expr.Kind {
		case unstable.Table:
			table = keyParts(expr.Key())
			inArray = false
			order.addPath(table)
		case unstable.ArrayTable:
			order.addPath(keyParts(expr.Key()))
			inArray = true
		case unstable.KeyValue:
			if inArray {
				continue
			}
			path := append(slices.Clone(table), keyParts(expr.Key())...)
			order.addPath(path)
			order.walkInline(path, expr.Value())
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return order.keys, nil
}

func (o *keyOrder) walkInline(path []string, node *unstable.Node) {
	if node == nil || node.Kind != unstable.InlineTable {
		return
	}
	it := node.Children()
	for it.Next() {
		kv := it.Node()
		if kv.Kind != unstable.KeyValue {
			continue
		}
		sub := append(slices.Clone(path), keyParts(kv.Key())...)
		o.addPath(sub)
		o.walkInline(sub, kv.Value())
	}
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func (o *keyOrder) walkYAML(path []string, n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, child := range n.Content {
			o.walkYAML(path, child)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Tag == "!!merge" {
				continue
			}
			o.add(path, key.Value)
			o.walkYAML(append(slices.Clone(path), key.Value), value)
		}
	}
}

// walkJSON consumes one value from dec. Objects nested in arrays are consumed
// without recording their keys.
func (o *keyOrder) walkJSON(path []string, record bool, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	switch delim {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)
			if record {
				o.add(path, key)
			}
			if err := o.walkJSON(append(slices.Clone(path), key), record, dec); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := o.walkJSON(path, false, dec); err != nil {
				return err
			}
		}
	}

	// closing delimiter
	_, err = dec.Token()
	return err
}
