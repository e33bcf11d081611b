package attr

// RemapFunctionAttrs substitutes function references by the given table. A
// function-valued attribute found in the table (by identity) is replaced by
// its mapping; arrays are remapped recursively, and a new array is interned
// only when at least one child actually changed — otherwise the original
// handle comes back untouched, avoiding a needless re-uniquing pass. Every
// other kind passes through unchanged.
func RemapFunctionAttrs(c *Context, a Attr, table map[Attr]FuncAttr) Attr {
	switch a.Kind() {
	case KindFunction:
		if mapped, ok := table[a]; ok {
			return mapped.Attr
		}
		return a
	case KindArray:
		arr, _ := a.AsArray()
		old := arr.Values()
		var next []Attr
		for i, child := range old {
			remapped := RemapFunctionAttrs(c, child, table)
			if next == nil && remapped != child {
				next = make([]Attr, i, len(old))
				copy(next, old[:i])
			}
			if next != nil {
				next = append(next, remapped)
			}
		}
		if next == nil {
			return a
		}
		return c.ArrayAttr(next).Attr
	default:
		return a
	}
}

// IsOrContainsFunction reports whether a is a function attribute or an array
// holding one at any depth. It short-circuits on the first hit.
func IsOrContainsFunction(a Attr) bool {
	switch a.Kind() {
	case KindFunction:
		return true
	case KindArray:
		arr, _ := a.AsArray()
		for _, child := range arr.Values() {
			if IsOrContainsFunction(child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
