package render

// Two-cell actor sprites indexed by animation frame, drawn facing right
// Frames 0-3 walk, 2 doubles as standing, 4 dances, 5 is scared
var actorSprites = [6][2]rune{
	{'~', 'o'},
	{'-', 'o'},
	{'~', 'O'},
	{'_', 'o'},
	{'\\', 'o'},
	{'!', 'O'},
}

// Runes for pieces lying tumbled, indexed by tile variant
var tumbleRunes = [4]rune{'*', '+', 'x', '#'}

// spriteFor returns the runes for frame, mirrored when flipped
func spriteFor(frame int, flipped bool) [2]rune {
	if frame < 0 || frame >= len(actorSprites) {
		frame = 2
	}
	s := actorSprites[frame]
	if flipped {
		s[0], s[1] = mirrorRune(s[1]), mirrorRune(s[0])
	}
	return s
}

func mirrorRune(r rune) rune {
	switch r {
	case '\\':
		return '/'
	case '/':
		return '\\'
	}
	return r
}
