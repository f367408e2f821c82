package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/milk9111/seasons/common"
	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/season"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

const progressSegments = 20

// hud is the corner panel showing the active season. It runs as a system so
// it sees the frame's season events before the scheduler drops them.
type hud struct {
	game     *Game
	ui       *ebitenui.UI
	season   *widget.Text
	progress *widget.Text

	current season.Season
	flips   int
}

// newHUD builds a small top-right panel with the season label and a button
// that toggles the season timer. Like the rest of the UI it uses colored
// nine-slices and the built-in basic font, so no theme assets are needed.
func newHUD(g *Game) *hud {
	h := &hud{game: g}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	h.season = widget.NewText(
		widget.TextOpts.Text(seasonLabel(season.Summer, 0), &face, white),
	)
	h.progress = widget.NewText(
		widget.TextOpts.Text(progressBar(0), &face, color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}),
	)

	toggleBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Toggle timer (T)", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.toggleTimer()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/5, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.season)
	panel.AddChild(h.progress)
	panel.AddChild(toggleBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

// Update reads this frame's season events and refreshes the labels.
func (h *hud) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventSeasonChanged {
			continue
		}
		data, ok := evt.Data.(ecs.SeasonChangedEvent)
		if !ok {
			continue
		}
		s, ok := season.Parse(data.Season)
		if !ok {
			continue
		}
		if s != h.current {
			h.flips++
		}
		h.current = s
	}
	h.season.Label = seasonLabel(h.current, h.flips)

	st := h.game.seasonTimer()
	if st == nil || st.Timer == nil || !st.Applied {
		h.progress.Label = "timer off"
		return
	}
	h.progress.Label = progressBar(st.Timer.Progress())
}

func seasonLabel(s season.Season, flips int) string {
	return fmt.Sprintf("Season: %s (%d flips)", s, flips)
}

func progressBar(p float64) string {
	if math.IsNaN(p) {
		p = 0
	}
	filled := int(common.Lerp(0, progressSegments, float32(common.Clamp01(p))))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressSegments-filled) + "]"
}
