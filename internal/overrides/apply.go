package overrides

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cvcheck/internal/document"
)

// Apply returns a copy of root with every override applied. Keys are applied
// in sorted order and the first one that does not fit the document aborts
// the batch; root itself is never modified.
//
// The value replaces the addressed node as a plain string; converting it to
// the field's type is left to validation. A missing final key on a mapping is
// added.
func Apply(root *document.Node, overrides map[string]string) (*document.Node, error) {
	out := root.Copy()
	if len(overrides) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := applyOne(out, key, overrides[key]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func applyOne(root *document.Node, key, value string) error {
	segments := strings.Split(key, ".")
	for _, s := range segments {
		if s == "" {
			return &Error{Kind: EmptyPath, Path: key, Message: fmt.Sprintf("`%s` is not a valid path.", key)}
		}
	}

	cur := root
	for i, seg := range segments {
		resolved := strings.Join(segments[:i], ".")
		last := i == len(segments)-1

		switch {
		case cur.IsList():
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return &Error{
					Kind:     NotAnIndex,
					Path:     key,
					Resolved: resolved,
					Message:  fmt.Sprintf("`%s` corresponds to a list, but `%s` is not an integer.", resolved, seg),
				}
			}
			if idx < 0 || idx >= len(cur.Items) {
				return &Error{
					Kind:     IndexOutOfRange,
					Path:     key,
					Resolved: resolved,
					Message:  fmt.Sprintf("Index %d is out of range for the list `%s`.", idx, resolved),
				}
			}
			if last {
				cur.Items[idx] = document.NewScalar(value, cur.Items[idx].Range)
				return nil
			}
			cur = cur.Items[idx]

		case cur.IsMap():
			field := cur.Lookup(seg)
			if last {
				if field != nil {
					field.Value = document.NewScalar(value, field.Value.Range)
				} else {
					cur.Set(seg, document.NewScalar(value, cur.Range))
				}
				return nil
			}
			if field == nil {
				return &Error{
					Kind:     KeyNotFound,
					Path:     key,
					Resolved: resolved,
					Message:  fmt.Sprintf("`%s` was not found in `%s`.", seg, displayPath(resolved)),
				}
			}
			cur = field.Value

		default:
			return &Error{
				Kind:     PathTypeMismatch,
				Path:     key,
				Resolved: resolved,
				Message:  fmt.Sprintf("`%s` cannot be applied: `%s` is neither a list nor a mapping.", key, displayPath(resolved)),
			}
		}
	}
	return nil
}

func displayPath(resolved string) string {
	if resolved == "" {
		return "(root)"
	}
	return resolved
}
