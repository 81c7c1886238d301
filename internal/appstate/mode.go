package appstate

// Mode is the screen the controller is showing. Exactly one is current.
type Mode int

const (
	ModeHome Mode = iota
	ModeViewing
	ModeSelectingArea
	ModeSettings
	ModeTimerForm
	ModeTimerRunning
)

var modeNames = [...]string{
	ModeHome:          "home",
	ModeViewing:       "viewing",
	ModeSelectingArea: "selecting area",
	ModeSettings:      "settings",
	ModeTimerForm:     "timer form",
	ModeTimerRunning:  "timer running",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// modal modes only let global shortcuts through.
func (m Mode) modal() bool {
	return m != ModeHome && m != ModeViewing
}

// Selection decides what Capture grabs.
type Selection int

const (
	SelectionFullscreen Selection = iota
	SelectionArea
)

func (s Selection) String() string {
	if s == SelectionArea {
		return "area"
	}
	return "fullscreen"
}
