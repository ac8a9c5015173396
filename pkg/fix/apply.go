package fix

// ApplyEdits applies a sorted, validated slice of edits to content and
// returns the new content. Edits must be prepared with PrepareEdits.
//
// Edits are applied back to front, so every offset refers to the original
// content no matter how earlier-applied (later-positioned) edits resized it.
func ApplyEdits(content string, edits []TextEdit) string {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	out := make([]byte, len(content)+delta)
	write := len(out)
	read := len(content)

	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]

		// Untouched bytes after this edit.
		write -= read - e.EndOffset
		copy(out[write:], content[e.EndOffset:read])

		write -= len(e.NewText)
		copy(out[write:], e.NewText)

		read = e.StartOffset
	}

	copy(out[:write], content[:read])

	return string(out)
}
