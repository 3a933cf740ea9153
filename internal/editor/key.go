package editor

// KeyKind classifies a logical key press.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrl
)

// Key is a decoded key press. Rune is set for KeyRune and holds the lower-case
// letter for KeyCtrl.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Rune returns a key for a printable character.
func Rune(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

// Ctrl returns a key for ctrl+r.
func Ctrl(r rune) Key { return Key{Kind: KeyCtrl, Rune: r} }

// printable reports whether the key inserts a byte: non-control ASCII only.
func (k Key) printable() bool {
	return k.Kind == KeyRune && k.Rune >= 0x20 && k.Rune < 0x7f
}
