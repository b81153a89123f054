package page

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// tappable makes any canvas object clickable.
type tappable struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	onTapped func()
}

func newTappable(content fyne.CanvasObject, onTapped func()) *tappable {
	item := &tappable{content: content, onTapped: onTapped}
	item.ExtendBaseWidget(item)
	return item
}

func (item *tappable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(item.content)
}

func (item *tappable) Tapped(*fyne.PointEvent) {
	if item.onTapped != nil {
		item.onTapped()
	}
}

func (item *tappable) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// activityLayer sits under the page content and reports clicks and pointer
// movement that no other widget consumed.
type activityLayer struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onTap   func()
	onMove  func()
}

func newActivityLayer(content fyne.CanvasObject, onTap, onMove func()) *activityLayer {
	layer := &activityLayer{content: content, onTap: onTap, onMove: onMove}
	layer.ExtendBaseWidget(layer)
	return layer
}

func (layer *activityLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(layer.content)
}

func (layer *activityLayer) Tapped(*fyne.PointEvent) {
	if layer.onTap != nil {
		layer.onTap()
	}
}

func (layer *activityLayer) MouseIn(*desktop.MouseEvent) {}

func (layer *activityLayer) MouseMoved(*desktop.MouseEvent) {
	if layer.onMove != nil {
		layer.onMove()
	}
}

func (layer *activityLayer) MouseOut() {}
