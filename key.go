package termconsole

import (
	"strings"
	"unicode"
)

// Key names produced by KeyDecoder and understood by the default KeyMap.
const (
	KeyReturn    = "return"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyTab       = "tab"
	KeyEscape    = "escape"
	KeySpace     = "space"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyInsert    = "insert"
	KeyDelete    = "delete"
	KeyPageUp    = "pageup"
	KeyPageDown  = "pagedown"
)

// Key is a single decoded keystroke.
//
// Sequence holds the raw characters the terminal sent for the key and Name a
// symbolic identifier such as "return", "left" or "a". Modifier flags are
// reported separately, so Ctrl+C arrives as Name "c" with Ctrl set.
type Key struct {
	Sequence string // Raw characters as read from the terminal
	Name     string // Symbolic key name (lowercase for letters)
	Ctrl     bool
	Meta     bool
	Shift    bool
}

// RuneKey builds the Key a terminal produces for a typed character.
func RuneKey(r rune) Key {
	k := Key{Sequence: string(r), Name: string(r)}
	switch {
	case r == ' ':
		k.Name = KeySpace
	case unicode.IsLetter(r):
		k.Name = string(unicode.ToLower(r))
		k.Shift = unicode.IsUpper(r)
	}
	return k
}

// NamedKey builds a Key for a special key such as "up" or "backspace".
func NamedKey(name string) Key {
	return Key{Name: name}
}

// CtrlKey builds the Key for Ctrl plus a letter, e.g. CtrlKey('c').
func CtrlKey(letter rune) Key {
	letter = unicode.ToLower(letter)
	return Key{
		Sequence: string(letter - 'a' + 1),
		Name:     string(letter),
		Ctrl:     true,
	}
}

// String returns the binding form of the key, e.g. "ctrl+c" or "meta+left".
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Meta {
		b.WriteString("meta+")
	}
	b.WriteString(k.Name)
	return b.String()
}

// Printable reports whether the key's sequence is text that can be inserted
// into the buffer. Control characters and escape sequences are not.
func (k Key) Printable() bool {
	if k.Sequence == "" || k.Ctrl || k.Meta {
		return false
	}
	for _, r := range k.Sequence {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
