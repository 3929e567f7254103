package rdf

import "sort"

// PrefixMap is a bidirectional mapping between short prefix labels and
// IRI namespaces, used as Graph metadata for Turtle serialization. It is
// an immutable value like the rest of the data model.
type PrefixMap struct {
	byPrefix map[string]string
}

// NewPrefixMap builds a PrefixMap from a prefix->namespace mapping.
func NewPrefixMap(m map[string]string) PrefixMap {
	pm := PrefixMap{byPrefix: make(map[string]string, len(m))}
	for k, v := range m {
		pm.byPrefix[k] = v
	}
	return pm
}

// IsZero reports whether the PrefixMap has no entries.
func (pm PrefixMap) IsZero() bool { return len(pm.byPrefix) == 0 }

// Namespace returns the namespace bound to prefix, if any.
func (pm PrefixMap) Namespace(prefix string) (string, bool) {
	ns, ok := pm.byPrefix[prefix]
	return ns, ok
}

// Prefix returns the prefix bound to namespace, if any (first match in
// sorted prefix order, for determinism when multiple prefixes map to the
// same namespace).
func (pm PrefixMap) Prefix(namespace string) (string, bool) {
	for _, p := range pm.sortedPrefixes() {
		if pm.byPrefix[p] == namespace {
			return p, true
		}
	}
	return "", false
}

func (pm PrefixMap) sortedPrefixes() []string {
	out := make([]string, 0, len(pm.byPrefix))
	for p := range pm.byPrefix {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Each calls f for every (prefix, namespace) pair in sorted prefix order.
func (pm PrefixMap) Each(f func(prefix, namespace string)) {
	for _, p := range pm.sortedPrefixes() {
		f(p, pm.byPrefix[p])
	}
}

// Len returns the number of bound prefixes.
func (pm PrefixMap) Len() int { return len(pm.byPrefix) }

// Put returns a new PrefixMap with prefix bound to namespace,
// last-writer-wins on a conflicting prefix (the explicit-call default;
// see Merge for the implicit-merge default).
func (pm PrefixMap) Put(prefix, namespace string) PrefixMap {
	out := pm.clone()
	out.byPrefix[prefix] = namespace
	return out
}

// Delete returns a new PrefixMap with the given prefixes removed.
func (pm PrefixMap) Delete(prefixes ...string) PrefixMap {
	out := pm.clone()
	for _, p := range prefixes {
		delete(out.byPrefix, p)
	}
	return out
}

// Clear returns an empty PrefixMap.
func (pm PrefixMap) Clear() PrefixMap { return PrefixMap{byPrefix: map[string]string{}} }

func (pm PrefixMap) clone() PrefixMap {
	out := PrefixMap{byPrefix: make(map[string]string, len(pm.byPrefix))}
	for k, v := range pm.byPrefix {
		out.byPrefix[k] = v
	}
	return out
}

// ConflictResolver decides which namespace a prefix keeps when two
// PrefixMaps disagree. It receives the prefix and both candidate
// namespaces and returns the namespace to keep.
type ConflictResolver func(prefix, existing, incoming string) string

// KeepExisting is a ConflictResolver implementing first-writer-wins,
// the default for implicit merges (e.g. Graph.Add of another Graph).
func KeepExisting(_, existing, _ string) string { return existing }

// KeepIncoming is a ConflictResolver implementing last-writer-wins, the
// default for explicit AddPrefixes calls.
func KeepIncoming(_, _, incoming string) string { return incoming }

// Merge combines pm and other under resolve for conflicting prefixes. If
// resolve is nil, KeepIncoming (last-writer-wins) is used.
func (pm PrefixMap) Merge(other PrefixMap, resolve ConflictResolver) PrefixMap {
	if resolve == nil {
		resolve = KeepIncoming
	}
	out := pm.clone()
	for _, p := range other.sortedPrefixes() {
		ns := other.byPrefix[p]
		if existing, ok := out.byPrefix[p]; ok && existing != ns {
			out.byPrefix[p] = resolve(p, existing, ns)
			continue
		}
		out.byPrefix[p] = ns
	}
	return out
}

// Shrink renders iri as a "prefix:local" QName if a bound namespace is a
// prefix of it and the remainder is a valid QName local part; otherwise
// ok is false.
func (pm PrefixMap) Shrink(iri string) (qname string, ok bool) {
	bestNS := ""
	bestPrefix := ""
	found := false
	for _, p := range pm.sortedPrefixes() {
		ns := pm.byPrefix[p]
		if ns == "" || len(iri) <= len(ns) || iri[:len(ns)] != ns {
			continue
		}
		local := iri[len(ns):]
		if !isQNameLocal(local) {
			continue
		}
		if len(ns) > len(bestNS) {
			bestNS, bestPrefix, found = ns, p, true
		}
	}
	if !found {
		return "", false
	}
	local := iri[len(bestNS):]
	if bestPrefix == "" {
		return ":" + local, true
	}
	return bestPrefix + ":" + local, true
}

// Expand resolves a "prefix:local" QName against the map.
func (pm PrefixMap) Expand(qname string) (IRI, bool) {
	for i := 0; i < len(qname); i++ {
		if qname[i] == ':' {
			prefix, local := qname[:i], qname[i+1:]
			if ns, ok := pm.byPrefix[prefix]; ok {
				return IRI{Value: ns + local}, true
			}
			return IRI{}, false
		}
	}
	return IRI{}, false
}
