package renderer

func (r *Renderer) AppendPath(path string) {
	r.paths.Append(path)
}

func (r *Renderer) PrependPath(path string) {
	r.paths.Prepend(path)
}

// RemoveFirstNPaths removes and returns up to n paths from the front of
// the search list.
func (r *Renderer) RemoveFirstNPaths(n int) []string {
	return r.paths.RemoveFirstN(n)
}

// RemoveLastNPaths removes and returns up to n paths from the end of the
// search list, in their original order.
func (r *Renderer) RemoveLastNPaths(n int) []string {
	return r.paths.RemoveLastN(n)
}

func (r *Renderer) HasPath(path string) bool {
	return r.paths.Has(path)
}

// SearchPaths returns a copy of the search list.
func (r *Renderer) SearchPaths() []string {
	return r.paths.Paths()
}
