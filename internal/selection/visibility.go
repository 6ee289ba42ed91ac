package selection

// Interactable reports whether an element can receive interaction at all:
// rendered, not hidden, and of non-zero size. Opacity is compared against
// the literal computed string "0"; "0.0" or near-zero values count as
// visible, matching how hosts report the property.
func Interactable(el ElementView) bool {
	if el.Style("display") == "none" {
		return false
	}
	if el.Style("visibility") == "hidden" {
		return false
	}
	if el.Style("opacity") == "0" {
		return false
	}

	bounds := el.Bounds()
	if bounds.Width() == 0 || bounds.Height() == 0 {
		return false
	}
	return true
}
