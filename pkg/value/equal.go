package value

// Equal reports whether two values are deeply equal.
// Numeric equality spans the Int and Num cases, so Int(1)
// equals a Num holding 1.0. Object comparison ignores key order.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && a == bv
	case Int, Num:
		ar, _ := Rat(a)
		br, ok := Rat(b)
		return ok && ar.Cmp(br) == 0
	case String:
		bv, ok := b.(String)
		return ok && a == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(a) != len(bv) {
			return false
		}
		for i, e := range a {
			if !Equal(e, bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || a.Len() != bv.Len() {
			return false
		}
		for _, key := range a.Keys() {
			av, _ := a.Get(key)
			bvv, ok := bv.Get(key)
			if !ok || !Equal(av, bvv) {
				return false
			}
		}
		return true
	}
	return false
}
