package component

import "github.com/milk9111/seasons/season"

// SeasonTimer attaches a season.Timer to an entity. Enabled is the desired
// state; Applied is what the season system last applied, so toggling
// Enabled fires the matching OnEnable/OnDisable on the next update.
type SeasonTimer struct {
	Timer   *season.Timer
	Enabled bool
	Applied bool
	// Param is the shader global written on broadcast.
	Param string
	// LengthSet is true when the length was given explicitly rather than
	// left to the default.
	LengthSet bool
}

var SeasonTimerComponent = NewComponent[SeasonTimer]()
