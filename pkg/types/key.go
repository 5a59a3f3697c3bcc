package types

// KeyKind classifies a key event delivered by the terminal input layer.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Key is a single decoded key event. Rune is set only for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey builds a printable-character key event.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}
