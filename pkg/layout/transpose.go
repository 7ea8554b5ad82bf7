package layout

import (
	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// TransposeDeep rewrites the tree rooted at n, substituting replace for the
// node find. find is matched by identity, not structure: two identical
// leaves are distinct targets.
//
// It returns the new subtree and true when find was located and replaced.
// It returns (nil, false, nil) when find is not in the tree or replace is
// find itself. Only the path from find up to n is rebuilt; every other
// subtree is shared with the original by reference.
//
// A nil replace removes find from a root; anywhere else it is an error.
// Substituting a [*Root] for a node below the top is a structural error.
func TransposeDeep(n, find, replace Node) (Node, bool, error) {
	if isNil(n) || isNil(find) {
		return nil, false, nil
	}
	if n == find {
		if replace == find {
			return nil, false, nil
		}
		return replace, true, nil
	}

	stem, ok := n.(Stem)
	if !ok {
		return nil, false, nil
	}
	for i := 0; i < stem.Len(); i++ {
		res, changed, err := TransposeDeep(stem.ChildAt(i), find, replace)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			continue
		}

		var c Child
		switch r := res.(type) {
		case nil:
			if _, isRoot := stem.(*Root); !isRoot {
				return nil, false, errs.Wrap(errs.ErrCodeStructure, ErrNilChild,
					"cannot remove slot %d of %s by transposition", i, stem.Kind())
			}
		case *Root:
			return nil, false, errs.Wrap(errs.ErrCodeStructure, ErrRootAsChild,
				"slot %d of %s", i, stem.Kind())
		case Child:
			c = r
		}

		out, err := WithChild(stem, i, c)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}
	return nil, false, nil
}

// TransposeDeep is [TransposeDeep] starting at the root. Replacing the root
// itself requires a [*Root] replacement.
func (r *Root) TransposeDeep(find, replace Node) (*Root, bool, error) {
	res, changed, err := TransposeDeep(r, find, replace)
	if err != nil || !changed {
		return nil, false, err
	}
	root, ok := res.(*Root)
	if !ok {
		return nil, false, errs.New(errs.ErrCodeStructure, "root cannot be replaced by a %s", kindOf(res))
	}
	return root, true, nil
}

// Substitute is [Root.TransposeDeep] for callers that require find to be
// present. Replacing a present node with itself returns r unchanged.
func (r *Root) Substitute(find, replace Node) (*Root, error) {
	out, changed, err := r.TransposeDeep(find, replace)
	if err != nil {
		return nil, err
	}
	if changed {
		return out, nil
	}
	if find == replace && r.Contains(find) {
		return r, nil
	}
	return nil, errs.Wrap(errs.ErrCodeNotFound, ErrNotFound, "transposition target %s", describe(find))
}

func kindOf(n Node) string {
	if isNil(n) {
		return "nil"
	}
	return n.Kind().String()
}
