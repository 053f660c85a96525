package blocks

// Checker decides whether two connections may be linked.
//
// With dragging set the stricter drag-time rules apply: the checker is then
// asked whether a block being dragged should offer to snap its connection a
// to the stationary connection b.
type Checker interface {
	CanConnect(a, b *Connection, dragging bool) bool
}

// DefaultChecker implements the standard compatibility rules.
type DefaultChecker struct{}

// CanConnect reports whether a and b are compatible. The connections must
// belong to different blocks, have opposite types and share a check tag.
func (DefaultChecker) CanConnect(a, b *Connection, dragging bool) bool {
	if a == nil || b == nil || a.source == nil || b.source == nil {
		return false
	}
	if a.source == b.source || a.typ.Opposite() != b.typ {
		return false
	}
	if !checksIntersect(a.check, b.check) {
		return false
	}
	if dragging {
		return dragChecks(a, b)
	}
	return true
}

func dragChecks(a, b *Connection) bool {
	if b.source.IsInsertionMarker() {
		return false
	}
	switch b.typ {
	case PreviousStatement:
		return canConnectToPrevious(a, b)
	case OutputValue:
		// A connected output is never spliced, unless it only holds a marker.
		if (b.target != nil && !b.target.source.IsInsertionMarker()) || a.target != nil {
			return false
		}
	case NextStatement:
		// A stack without a tail must not bump a block that has one.
		if b.target != nil && a.source.NextConnection() == nil && b.target.source.NextConnection() != nil {
			return false
		}
	}
	return true
}

func canConnectToPrevious(a, b *Connection) bool {
	if a.target != nil {
		return false
	}
	if b.target == nil {
		return true
	}
	above := b.target.source
	if above.IsInsertionMarker() {
		return above.PreviousBlock() == nil
	}
	return false
}
