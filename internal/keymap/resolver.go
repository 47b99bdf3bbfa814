package keymap

// Resolver looks up the action bound to a key, and the reverse for the
// help popup.
type Resolver struct {
	byKey    map[string]Action
	byAction map[Action][]string
}

// NewResolver indexes the bindings. Keys repeated across contexts keep
// their first action; keys repeated under one action are deduped.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.byKey[key]; !taken {
				r.byKey[key] = b.Action
			}
		}
		r.byAction[b.Action] = appendUnique(r.byAction[b.Action], b.Keys)
	}
	return r
}

// Resolve returns the action for a key, or "" when the key is unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func appendUnique(dst []string, keys []string) []string {
	for _, k := range keys {
		found := false
		for _, have := range dst {
			if have == k {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, k)
		}
	}
	return dst
}
