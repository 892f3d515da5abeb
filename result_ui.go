package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/sim"
	"golang.org/x/image/font/basicfont"
)

// resultTitle picks the dialog heading for a finished run.
func resultTitle(snap sim.Snapshot) string {
	switch {
	case snap.LevelComplete:
		return "Level Complete!"
	case snap.GameOver:
		return "Game Over"
	}
	return ""
}

// NewResultUI builds the centered end-of-run dialog with Play Again and
// Copy Replay buttons. Colored nine-slices and the built-in basic font keep
// it free of theme assets.
func NewResultUI(snap sim.Snapshot, onPlayAgain, onCopy func()) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text(resultTitle(snap), &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	score := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Score: %d  Coins: %d/%d", snap.Score, snap.CollectedCoins(), len(snap.Coins)), &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(score)
	panel.AddChild(button("Play Again", onPlayAgain))
	if onCopy != nil {
		panel.AddChild(button("Copy Replay", onCopy))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
