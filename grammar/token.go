package grammar

// TokenKind is a registered category of lexical unit. Immutable once
// registered.
type TokenKind struct {
	ID        int
	Name      string
	ValueType string
	Pattern   string
	Skip      bool
}

// TokenRegistry is the canonical set of token kinds of one grammar.
type TokenRegistry struct {
	kinds  []*TokenKind
	byName map[string]*TokenKind
}

func newTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		byName: map[string]*TokenKind{},
	}
}

func (r *TokenRegistry) register(kind *TokenKind) error {
	for _, k := range r.kinds {
		if k.ID == kind.ID {
			return semErrDuplicateTokenID
		}
	}
	if _, exist := r.byName[kind.Name]; exist {
		return semErrDuplicateTokenName
	}

	r.kinds = append(r.kinds, kind)
	r.byName[kind.Name] = kind
	return nil
}

// Kinds returns every registered kind in registration order.
func (r *TokenRegistry) Kinds() []*TokenKind {
	return r.kinds
}

// KindByName looks a kind up by its unique name.
func (r *TokenRegistry) KindByName(name string) (*TokenKind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// KindsByValueType returns every kind carrying the given value type, in
// registration order.
func (r *TokenRegistry) KindsByValueType(valueType string) []*TokenKind {
	if valueType == "" {
		return nil
	}
	var kinds []*TokenKind
	for _, k := range r.kinds {
		if k.ValueType == valueType {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
