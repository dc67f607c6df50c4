package signal

// Order is the computed ordering over active signals: signals whose
// resolved coefficient is zero are pruned, and textual signals are grouped
// by field so a document's postings for a given field are only ever
// advanced once per signal-computation pass.
type Order struct {
	active     []Signal
	textFields []TextField
	hasTextual bool
}

// NewOrder builds a compute order from a coefficient-resolution function.
// The order is built once, at construction time, using whatever
// coefficients are resolvable then (query override or registry default) —
// a linear model attached later via a setter does not retroactively add or
// remove signals from the order, it only changes the weight used when
// folding an already-active signal's contribution. See DESIGN.md for this
// decision.
func NewOrder(resolve func(Signal) float64) Order {
	var o Order
	seen := make(map[TextField]bool, numTextFields)
	for _, s := range All() {
		if resolve(s) == 0 {
			continue
		}
		o.active = append(o.active, s)
		if def := s.Metadata(); def.Kind == KindTextual {
			o.hasTextual = true
			if !seen[def.Field] {
				seen[def.Field] = true
				o.textFields = append(o.textFields, def.Field)
			}
		}
	}
	return o
}

// Active returns the pruned, ordered list of signals to compute per
// document.
func (o Order) Active() []Signal {
	return o.active
}

// TextFields returns the distinct text fields referenced by any active
// textual signal — exactly the set the segment text-field binder
// needs to bind.
func (o Order) TextFields() []TextField {
	return o.textFields
}

// HasTextual reports whether any textual signal is active. When false, the
// short-circuit applies: textual signals yield no value
// without the computer touching any posting iterator.
func (o Order) HasTextual() bool {
	return o.hasTextual
}
