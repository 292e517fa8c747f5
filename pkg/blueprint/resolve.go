package blueprint

// Resolve checks cross-references in a parsed blueprint. A view whose list
// property does not follow the <Strand>.all() shape, or names a strand
// absent from the blueprint, fails with an *UnresolvedReferenceError;
// there is no fallback to another strand.
func Resolve(bp *Blueprint) error {
	for _, v := range bp.Views {
		ref, present := v.Props[PropList]
		if !present {
			continue
		}
		name, ok := v.ListStrand()
		if !ok {
			return &UnresolvedReferenceError{View: v.Name, Strand: ref}
		}
		if _, found := bp.Strand(name); !found {
			return &UnresolvedReferenceError{View: v.Name, Strand: name}
		}
	}
	return nil
}
