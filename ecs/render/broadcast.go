package render

import "github.com/milk9111/seasons/season"

// GlobalBroadcaster writes each broadcast season into a Globals parameter.
type GlobalBroadcaster struct {
	Globals *Globals
	Param   string
	// OnBroadcast, when set, runs after the write.
	OnBroadcast func(season.Season)
}

func (b *GlobalBroadcaster) Broadcast(s season.Season) {
	if b == nil {
		return
	}
	param := b.Param
	if param == "" {
		param = UseSummerTexture
	}
	b.Globals.Set(param, s.Value())
	if b.OnBroadcast != nil {
		b.OnBroadcast(s)
	}
}
