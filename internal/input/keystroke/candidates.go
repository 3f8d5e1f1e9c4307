package keystroke

// MatchCandidates returns the keystrokes a resolver should try, in order,
// when matching this press against configured bindings.
//
// It is not known whether the user meant the composed text or the key
// itself. On some layouts keys used in bindings sit behind option ("$" is
// alt-ç on a Czech keyboard) and some IMEs turn a key sequence into one
// character ("\"" is typed as "\" space" on a Brazilian keyboard). When
// the IME text differs from the key, the composed text is tried first with
// every modifier except control dropped, then the literal key with its
// original modifiers. The result is never empty and no candidate carries
// IME text.
func (k Keystroke) MatchCandidates() []Keystroke {
	if !k.HasIMEKey {
		return []Keystroke{k}
	}

	literal := k.WithoutIMEKey()
	if k.IMEKey == k.Key {
		return []Keystroke{literal}
	}

	composed := Keystroke{
		Modifiers: Modifiers{Control: k.Modifiers.Control},
		Key:       k.IMEKey,
	}
	return []Keystroke{composed, literal}
}
