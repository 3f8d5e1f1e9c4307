package keymap

// LoadDefaults registers the default keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// File
			{Keys: "cmd-s", Action: "file.save", Description: "Save"},
			{Keys: "cmd-shift-s", Action: "file.saveAs", Description: "Save as"},
			{Keys: "cmd-o", Action: "file.open", Description: "Open file"},
			{Keys: "cmd-w", Action: "file.close", Description: "Close file"},

			// Edit
			{Keys: "cmd-z", Action: "edit.undo", Description: "Undo"},
			{Keys: "cmd-shift-z", Action: "edit.redo", Description: "Redo"},
			{Keys: "cmd-c", Action: "edit.copy", Description: "Copy"},
			{Keys: "cmd-x", Action: "edit.cut", Description: "Cut"},
			{Keys: "cmd-v", Action: "edit.paste", Description: "Paste"},

			// View
			{Keys: "cmd-=", Action: "view.zoomIn", Description: "Zoom in"},
			{Keys: "cmd--", Action: "view.zoomOut", Description: "Zoom out"},
			{Keys: "cmd-shift-p", Action: "palette.show", Description: "Command palette"},

			// Editor
			{Keys: "backspace", Action: "editor.deleteLeft", Description: "Delete left", Context: "editor"},
			{Keys: "delete", Action: "editor.deleteRight", Description: "Delete right", Context: "editor"},
			{Keys: "enter", Action: "editor.newline", Description: "New line", Context: "editor"},
			{Keys: "tab", Action: "editor.tab", Description: "Indent", Context: "editor"},
			{Keys: "up", Action: "cursor.up", Description: "Move up", Context: "editor"},
			{Keys: "down", Action: "cursor.down", Description: "Move down", Context: "editor"},
			{Keys: "left", Action: "cursor.left", Description: "Move left", Context: "editor"},
			{Keys: "right", Action: "cursor.right", Description: "Move right", Context: "editor"},
			{Keys: "escape", Action: "editor.cancel", Description: "Cancel", Context: "editor"},
		},
	}
}
