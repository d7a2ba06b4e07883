package algebra

import "fmt"

// GetUniqueID returns n names not present in existing, guaranteed disjoint
// from existing and internally unique: it suffixes the lexicographically
// maximum name in existing (or "v" when existing is empty) with sequence
// numbers, skipping any candidate that happens to already be taken.
func GetUniqueID(existing []string, n int) []string {
	taken := make(map[string]bool, len(existing))
	base := ""
	for _, e := range existing {
		taken[e] = true
		if e > base {
			base = e
		}
	}
	if base == "" {
		base = "v"
	}

	out := make([]string, 0, n)
	for i := 0; len(out) < n; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if taken[candidate] {
			continue
		}
		taken[candidate] = true
		out = append(out, candidate)
	}
	return out
}

// substituteElementary renames free variables of t per renaming.
func substituteElementary(t ElementaryTerm, renaming map[string]string) ElementaryTerm {
	switch v := t.(type) {
	case Constant:
		return v
	case Variable:
		if newName, ok := renaming[v.Name]; ok {
			return Variable{Name: newName}
		}
		return v
	case additionTerm:
		return additionTerm{
			L: substituteElementary(v.L, renaming),
			R: substituteElementary(v.R, renaming),
		}
	default:
		return t
	}
}

// substituteRelational renames t's free variables per renaming. For a Drop
// term, any renaming target that would land inside the term's own bound
// variable set is capture-avoided by first renaming the colliding bound
// variable to a fresh name, unless allowCollision is set.
func substituteRelational(t RelationalAlgebraTerm, renaming map[string]string, allowCollision bool) (RelationalAlgebraTerm, error) {
	switch v := t.(type) {
	case baseTerm:
		args := make([]ElementaryTerm, len(v.args))
		for i, a := range v.args {
			args[i] = substituteElementary(a, renaming)
		}
		return baseTerm{rel: v.rel, args: args}, nil

	case binaryTerm:
		l, err := substituteRelational(v.l, renaming, allowCollision)
		if err != nil {
			return nil, err
		}
		r, err := substituteRelational(v.r, renaming, allowCollision)
		if err != nil {
			return nil, err
		}
		return binaryTerm{and: v.and, l: l, r: r}, nil

	case complementTerm:
		inner, err := substituteRelational(v.t, renaming, allowCollision)
		if err != nil {
			return nil, err
		}
		return complementTerm{t: inner}, nil

	case dropTerm:
		return substituteDrop(v, renaming, allowCollision)

	default:
		return nil, fmt.Errorf("algebra: unhandled relational term type %T", t)
	}
}

func substituteDrop(d dropTerm, renaming map[string]string, allowCollision bool) (RelationalAlgebraTerm, error) {
	vars := append([]string(nil), d.vars...)
	inner := d.t

	if !allowCollision {
		bound := make(map[string]bool, len(vars))
		for _, v := range vars {
			bound[v] = true
		}
		innerFree := make(map[string]bool, len(inner.FreeVars()))
		for _, v := range inner.FreeVars() {
			innerFree[v] = true
		}
		for source, target := range renaming {
			if bound[source] || !innerFree[source] || !bound[target] {
				continue
			}
			// The renaming would capture `target`: rename the bound
			// variable out of the way first.
			existing := append(append([]string(nil), inner.FreeVars()...), vars...)
			fresh := GetUniqueID(existing, 1)[0]
			innerRenamed, err := substituteRelational(inner, map[string]string{target: fresh}, true)
			if err != nil {
				return nil, err
			}
			inner = innerRenamed
			for i, v := range vars {
				if v == target {
					vars[i] = fresh
				}
			}
			bound[target] = false
			bound[fresh] = true
		}
	}

	reducedRenaming := make(map[string]string, len(renaming))
	boundNow := make(map[string]bool, len(vars))
	for _, v := range vars {
		boundNow[v] = true
	}
	for k, v := range renaming {
		if boundNow[k] {
			continue
		}
		reducedRenaming[k] = v
	}

	newInner, err := substituteRelational(inner, reducedRenaming, allowCollision)
	if err != nil {
		return nil, err
	}
	return dropTerm{t: newInner, vars: vars}, nil
}
