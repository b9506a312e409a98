package renderer

// Get returns the default data value stored under key.
func (r *Renderer) Get(key string) (any, error) {
	v, ok := r.data[key]
	if !ok {
		return nil, &UndefinedKeyError{Key: key, Known: r.Data()}
	}
	return v, nil
}

// Set stores v under key in the default data and returns r so calls can
// be chained.
func (r *Renderer) Set(key string, v any) *Renderer {
	r.data[key] = v
	return r
}

func (r *Renderer) Has(key string) bool {
	_, ok := r.data[key]
	return ok
}

func (r *Renderer) Remove(key string) {
	delete(r.data, key)
}

// Data returns a shallow copy of the default data.
func (r *Renderer) Data() Data {
	d := make(Data, len(r.data))
	for k, v := range r.data {
		d[k] = v
	}
	return d
}
