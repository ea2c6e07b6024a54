package entries

import "github.com/jonathan/cvcheck/internal/document"

// Infer decides which shape an untagged entry has. Scalars are text
// entries; a mapping takes the first shape, in catalog order, owning one of
// its keys as a characteristic field.
func (c *Catalog) Infer(n *document.Node) (ShapeName, error) {
	switch {
	case n.IsNull():
		return "", &EntryMissingError{}
	case n.IsScalar():
		return TextShape, nil
	case n.IsMap():
		for _, s := range c.shapes {
			characteristic := c.characteristic[s.Name]
			for _, key := range n.Keys() {
				if characteristic[key] {
					return s.Name, nil
				}
			}
		}
		return "", &ShapeNotFoundError{Keys: n.Keys()}
	default:
		return "", &ShapeNotFoundError{}
	}
}
