package bridge

// dealer hands out nested specs still to be resolved, each one once.
type dealer struct {
	needs []Spec
	seen  map[Spec]struct{}
}

// Needs queues spec unless it was dealt or queued before.
func (d *dealer) Needs(spec Spec) {
	if d.seen == nil {
		d.seen = make(map[Spec]struct{})
	}

	if _, ok := d.seen[spec]; ok {
		return
	}

	d.seen[spec] = struct{}{}
	d.needs = append(d.needs, spec)
}

// Next pops the next queued spec.
func (d *dealer) Next() (Spec, bool) {
	if len(d.needs) == 0 {
		return Spec{}, false
	}

	spec := d.needs[0]
	d.needs = d.needs[1:]

	return spec, true
}

// Done marks spec as resolved without queueing it.
func (d *dealer) Done(spec Spec) {
	if d.seen == nil {
		d.seen = make(map[Spec]struct{})
	}

	d.seen[spec] = struct{}{}
}
