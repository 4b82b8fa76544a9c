package source

// StringID identifies an interned string. NoStringID maps to the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier and literal spellings so AST nodes can
// carry compact uint32 handles instead of strings.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern stores s (copying it out of any shared buffer) and returns its ID.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the given bytes as a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Has reports whether id is valid for this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Lookup returns the string for an ID, or "" and false when invalid.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for an ID and panics when invalid.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}
