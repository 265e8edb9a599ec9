package capability

// Record is a flat mapping of attribute names to probed values for one
// hardware category. A missing key and an explicit Unknown value are
// equivalent: both mean the attribute could not be determined.
type Record map[string]Value

// Get returns the value for the named attribute, or Unknown if absent.
func (r Record) Get(key string) Value {
	if r == nil {
		return Unknown()
	}
	if v, ok := r[key]; ok {
		return v
	}
	return Unknown()
}

// IsTrue reports whether the named attribute is definitively true.
func (r Record) IsTrue(key string) bool { return r.Get(key).IsTrue() }

// Int returns the named attribute as an integer.
func (r Record) Int(key string) (int64, bool) { return r.Get(key).AsInt() }

// Float returns the named attribute as a float.
func (r Record) Float(key string) (float64, bool) { return r.Get(key).AsFloat() }

// Str returns the named attribute as a string.
func (r Record) Str(key string) (string, bool) { return r.Get(key).AsString() }

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
