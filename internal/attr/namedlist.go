package attr

import (
	"strconv"
	"strings"

	"lattice/internal/source"
)

// NamedAttr is one (name, value) entry of a named attribute list. The value
// must never be null inside a list.
type NamedAttr struct {
	Name  source.StringID
	Value Attr
}

// listStorage is the interned, immutable backing of a NamedAttributeList.
type listStorage struct {
	attrs []NamedAttr
}

// RemoveResult reports the outcome of NamedAttributeList.Remove, so callers
// can branch without a sentinel check.
type RemoveResult uint8

const (
	Removed RemoveResult = iota
	NotFound
)

// NamedAttributeList manages the ordered named attributes of one IR
// construct. Attribute counts per construct stay small (a dozen or two), so
// every lookup is a linear scan and the footprint stays one slice. The
// backing storage is interned and immutable; Set and Remove swap the list's
// storage pointer for a freshly interned one.
type NamedAttributeList struct {
	st *listStorage
}

// NewNamedAttributeList builds a list over the given entries.
func (c *Context) NewNamedAttributeList(attrs []NamedAttr) NamedAttributeList {
	return NamedAttributeList{st: c.internList(attrs)}
}

func (c *Context) internList(attrs []NamedAttr) *listStorage {
	if len(attrs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("list:")
	for _, na := range attrs {
		if na.Value.IsNull() {
			panic("attr: null attribute in a named attribute list")
		}
		sb.WriteString(strconv.FormatUint(uint64(na.Name), 10))
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatUint(uint64(na.Value.st.id), 10))
		sb.WriteByte(',')
	}
	key := sb.String()

	c.mu.RLock()
	st, ok := c.lists[key]
	c.mu.RUnlock()
	if ok {
		return st
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.lists[key]; ok {
		return st
	}
	st = &listStorage{attrs: append([]NamedAttr(nil), attrs...)}
	c.lists[key] = st
	return st
}

// Attrs returns the entries in order. Read-only view.
func (l NamedAttributeList) Attrs() []NamedAttr {
	if l.st == nil {
		return nil
	}
	return l.st.attrs
}

// Len returns the number of entries.
func (l NamedAttributeList) Len() int {
	if l.st == nil {
		return 0
	}
	return len(l.st.attrs)
}

// Get returns the value of the first entry with the given name, or the null
// attribute when the name is absent. Absence is a valid outcome, not an
// error.
func (l NamedAttributeList) Get(name source.StringID) Attr {
	if l.st == nil {
		return Attr{}
	}
	for _, na := range l.st.attrs {
		if na.Name == name {
			return na.Value
		}
	}
	return Attr{}
}

// SetAttrs replaces the whole list.
func (l *NamedAttributeList) SetAttrs(c *Context, attrs []NamedAttr) {
	l.st = c.internList(attrs)
}

// Set replaces the value of an existing entry in place, or appends a new
// entry when the name is absent. Storage is immutable, so either way the
// list points at freshly interned storage afterwards.
func (l *NamedAttributeList) Set(c *Context, name source.StringID, value Attr) {
	if value.IsNull() {
		panic("attr: setting a null attribute value")
	}
	old := l.Attrs()
	next := make([]NamedAttr, 0, len(old)+1)
	replaced := false
	for _, na := range old {
		if na.Name == name && !replaced {
			na.Value = value
			replaced = true
		}
		next = append(next, na)
	}
	if !replaced {
		next = append(next, NamedAttr{Name: name, Value: value})
	}
	l.st = c.internList(next)
}

// Remove drops the entry with the given name, preserving the order of the
// rest. It reports whether the name was present; an absent name leaves the
// list untouched.
func (l *NamedAttributeList) Remove(c *Context, name source.StringID) RemoveResult {
	old := l.Attrs()
	for i, na := range old {
		if na.Name == name {
			next := make([]NamedAttr, 0, len(old)-1)
			next = append(next, old[:i]...)
			next = append(next, old[i+1:]...)
			l.st = c.internList(next)
			return Removed
		}
	}
	return NotFound
}
