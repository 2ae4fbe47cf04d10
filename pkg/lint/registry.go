package lint

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Rules register themselves from init, so lookups only contend with each
// other once the program is running.
var (
	rulesMu sync.RWMutex
	rules   = map[string]RuleDef{}
)

// Register makes a rule available to analyzers. It panics when the rule has
// no ID or no check, or when the ID is already taken.
func Register(rule RuleDef) {
	if rule.ID == "" || rule.Check == nil {
		panic(fmt.Sprintf("lint: rule %q registered without ID or check", rule.Name))
	}
	rulesMu.Lock()
	defer rulesMu.Unlock()
	if _, dup := rules[rule.ID]; dup {
		panic("lint: Register called twice for rule " + rule.ID)
	}
	rules[rule.ID] = rule
}

// GetAll lists the registered rules sorted by ID.
func GetAll() []RuleDef {
	return selectRules(func(RuleDef) bool { return true })
}

// GetByID looks a rule up by its ID.
func GetByID(id string) (RuleDef, bool) {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	rule, ok := rules[id]
	return rule, ok
}

// GetByGroup lists the rules of one group sorted by ID.
func GetByGroup(group string) []RuleDef {
	return selectRules(func(r RuleDef) bool { return r.Group == group })
}

func selectRules(keep func(RuleDef) bool) []RuleDef {
	rulesMu.RLock()
	var out []RuleDef
	for _, r := range rules {
		if keep(r) {
			out = append(out, r)
		}
	}
	rulesMu.RUnlock()

	slices.SortFunc(out, func(a, b RuleDef) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
