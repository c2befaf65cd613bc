package termconsole

// KeyAction represents the editor action bound to a key
type KeyAction int

// Key action constants define what the line editor does for a bound key.
// Keys without a binding are inserted when printable and ignored otherwise.
const (
	ActionNone KeyAction = iota
	ActionSubmit
	ActionCancel
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionHistoryUp
	ActionHistoryDown
	ActionDeleteChar
)

// KeyMap holds the key binding configuration.
// Bindings are keyed by Key.String(), for example "return" or "ctrl+c".
type KeyMap struct {
	bindings map[string]KeyAction
}

// NewDefaultKeyMap creates the default key bindings for the line editor.
//
// Default key bindings:
//   - Return/Enter: Submit the line
//   - Ctrl+C: Cancel (interrupt the host)
//   - Left/Right, Ctrl+B/Ctrl+F: Move the cursor
//   - Home/End, Ctrl+A/Ctrl+E: Jump to the start or end of the line
//   - Up/Down, Ctrl+P/Ctrl+N: Browse history
//   - Backspace: Delete the character before the cursor
//
// Example:
//
//	keyMap := termconsole.NewDefaultKeyMap()
//	// Let Tab submit the line as well
//	keyMap.Bind("tab", termconsole.ActionSubmit)
//
//	c, err := termconsole.New(termconsole.WithKeyMap(keyMap))
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{bindings: make(map[string]KeyAction)}

	km.bindings[KeyReturn] = ActionSubmit
	km.bindings[KeyEnter] = ActionSubmit
	km.bindings["ctrl+c"] = ActionCancel
	km.bindings[KeyLeft] = ActionMoveLeft
	km.bindings[KeyRight] = ActionMoveRight
	km.bindings[KeyHome] = ActionMoveHome
	km.bindings[KeyEnd] = ActionMoveEnd
	km.bindings[KeyUp] = ActionHistoryUp
	km.bindings[KeyDown] = ActionHistoryDown
	km.bindings[KeyBackspace] = ActionDeleteChar

	// readline aliases
	km.bindings["ctrl+a"] = ActionMoveHome
	km.bindings["ctrl+e"] = ActionMoveEnd
	km.bindings["ctrl+b"] = ActionMoveLeft
	km.bindings["ctrl+f"] = ActionMoveRight
	km.bindings["ctrl+p"] = ActionHistoryUp
	km.bindings["ctrl+n"] = ActionHistoryDown

	return km
}

// Bind adds or updates a binding. The name uses the Key.String form,
// such as "ctrl+k", "meta+left" or "delete". Binding ActionNone removes
// the key's binding.
func (km *KeyMap) Bind(name string, action KeyAction) {
	if action == ActionNone {
		delete(km.bindings, name)
		return
	}
	km.bindings[name] = action
}

// GetAction returns the action for a key, or ActionNone if not bound
func (km *KeyMap) GetAction(k Key) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	if action, exists := km.bindings[k.String()]; exists {
		return action
	}
	return ActionNone
}
