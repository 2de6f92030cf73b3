package input

import (
	"github.com/gdamore/tcell/v2"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit    // q, Esc, Ctrl+C
	IntentScatter // Mouse click, Space, Enter
	IntentPause   // p
	IntentResize  // Terminal resize event
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "Quit"
	case IntentScatter:
		return "Scatter"
	case IntentPause:
		return "Pause"
	case IntentResize:
		return "Resize"
	default:
		return "None"
	}
}

// Classify maps a terminal event to an intent
// Only a button press counts as a click; drags and releases with no button are ignored
func Classify(ev tcell.Event) IntentType {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return classifyKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&(tcell.Button1|tcell.Button2|tcell.Button3) != 0 {
			return IntentScatter
		}
	case *tcell.EventResize:
		return IntentResize
	}
	return IntentNone
}

func classifyKey(ev *tcell.EventKey) IntentType {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return IntentQuit
	case tcell.KeyEnter:
		return IntentScatter
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return IntentQuit
		case 'c':
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				return IntentQuit
			}
		case ' ':
			return IntentScatter
		case 'p', 'P':
			return IntentPause
		}
	}
	return IntentNone
}
