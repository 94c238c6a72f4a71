package urltree

// ParamMap is an insertion-ordered string->string map, used for matrix
// parameters and for the merged params carried on an ActivatedRouteSnapshot.
// A plain Go map loses insertion order, which the grammar's "ordered map of
// matrix parameters" invariant (spec.md §3) requires we preserve.
type ParamMap struct {
	keys   []string
	values map[string]string
}

// NewParamMap builds an empty ParamMap.
func NewParamMap() *ParamMap {
	return &ParamMap{values: make(map[string]string)}
}

// ParamMapFrom builds a ParamMap from a plain map, in the iteration order Go
// gives us — callers that care about order should use Set in the order they
// want instead.
func ParamMapFrom(m map[string]string) *ParamMap {
	pm := NewParamMap()
	for k, v := range m {
		pm.Set(k, v)
	}
	return pm
}

// Set inserts or overwrites key, preserving its original position if it
// already existed.
func (p *ParamMap) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key, the empty string when absent.
func (p *ParamMap) Get(key string) string {
	if p == nil {
		return ""
	}
	return p.values[key]
}

// Has reports whether key is present.
func (p *ParamMap) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (p *ParamMap) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of entries.
func (p *ParamMap) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns a deep copy.
func (p *ParamMap) Clone() *ParamMap {
	out := NewParamMap()
	if p == nil {
		return out
	}
	for _, k := range p.keys {
		out.Set(k, p.values[k])
	}
	return out
}

// Merge overlays other on top of p, returning a new ParamMap with p's
// entries first, then other's (overwriting on key collision). Used when
// merging positional matcher params with the matrix params of the last
// consumed segment (spec.md §4.5).
func (p *ParamMap) Merge(other *ParamMap) *ParamMap {
	out := p.Clone()
	if other == nil {
		return out
	}
	for _, k := range other.keys {
		out.Set(k, other.values[k])
	}
	return out
}

// Equal reports shallow key/value equality, used by UrlSegment.Equal.
func (p *ParamMap) Equal(other *ParamMap) bool {
	if p.Len() != other.Len() {
		return false
	}
	for _, k := range p.Keys() {
		if !other.Has(k) || other.Get(k) != p.Get(k) {
			return false
		}
	}
	return true
}

// ToMap returns a plain map copy.
func (p *ParamMap) ToMap() map[string]string {
	out := make(map[string]string, p.Len())
	if p == nil {
		return out
	}
	for _, k := range p.keys {
		out[k] = p.values[k]
	}
	return out
}

// QueryParamMap is the query-string analog of ParamMap: values may be
// repeated, accumulating into an ordered slice (spec.md §4.1 tokenization
// rule: "Repeated query keys accumulate into an array in insertion order").
type QueryParamMap struct {
	keys   []string
	values map[string][]string
}

// NewQueryParamMap builds an empty QueryParamMap.
func NewQueryParamMap() *QueryParamMap {
	return &QueryParamMap{values: make(map[string][]string)}
}

// Add appends value under key, creating the key if new.
func (q *QueryParamMap) Add(key, value string) {
	if q.values == nil {
		q.values = make(map[string][]string)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = append(q.values[key], value)
}

// Set replaces all values for key with a single value.
func (q *QueryParamMap) Set(key, value string) {
	if q.values == nil {
		q.values = make(map[string][]string)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = []string{value}
}

// Get returns the first value for key, or "" when absent.
func (q *QueryParamMap) Get(key string) string {
	if q == nil {
		return ""
	}
	vs := q.values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// GetAll returns every value recorded for key, in insertion order.
func (q *QueryParamMap) GetAll(key string) []string {
	if q == nil {
		return nil
	}
	return append([]string(nil), q.values[key]...)
}

// Has reports whether key is present.
func (q *QueryParamMap) Has(key string) bool {
	if q == nil {
		return false
	}
	_, ok := q.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (q *QueryParamMap) Keys() []string {
	if q == nil {
		return nil
	}
	return append([]string(nil), q.keys...)
}

// Len returns the number of distinct keys.
func (q *QueryParamMap) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Clone returns a deep copy.
func (q *QueryParamMap) Clone() *QueryParamMap {
	out := NewQueryParamMap()
	if q == nil {
		return out
	}
	for _, k := range q.keys {
		for _, v := range q.values[k] {
			out.Add(k, v)
		}
	}
	return out
}

// Equal reports shallow key/value-slice equality.
func (q *QueryParamMap) Equal(other *QueryParamMap) bool {
	if q.Len() != other.Len() {
		return false
	}
	for _, k := range q.Keys() {
		a, b := q.GetAll(k), other.GetAll(k)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
