package appstate

import (
	"fmt"

	"github.com/example/darkmapgen/internal/model"
)

const (
	sidebarWidth = 120
	statusHeight = 20
	rowHeight    = 16
)

// row is one line of the page and location tree.
type row struct {
	page  int
	loc   *model.Location
	text  string
	depth int
}

// treeRows lists every page with an image followed by its locations in
// index order.
func treeRows(p *model.Project) []row {
	var rows []row
	for _, n := range p.Pages() {
		rows = append(rows, row{page: n, text: fmt.Sprintf("PAGE%03d", n)})
		for _, loc := range p.Map(n).Sorted() {
			rows = append(rows, row{page: n, loc: loc, text: fmt.Sprintf("%03d", loc.Index), depth: 1})
		}
	}
	return rows
}

// selectedRow returns the row of the current selection, or -1.
func selectedRow(rows []row, page int, sel *model.Location) int {
	for i, r := range rows {
		if r.page == page && r.loc == sel {
			return i
		}
	}
	return -1
}

// rowAt returns the row under sidebar position y, or -1.
func rowAt(rows []row, y, scroll int) int {
	y += scroll
	if y < 0 {
		return -1
	}
	i := y / rowHeight
	if i >= len(rows) {
		return -1
	}
	return i
}

// clampScroll limits the sidebar scroll offset for a sidebar of height h.
func clampScroll(scroll, n, h int) int {
	limit := n*rowHeight - h
	if scroll > limit {
		scroll = limit
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// revealRow adjusts scroll so row i is fully visible.
func revealRow(scroll, i, h int) int {
	if i < 0 {
		return scroll
	}
	top := i * rowHeight
	if top < scroll {
		return top
	}
	if top+rowHeight > scroll+h {
		return top + rowHeight - h
	}
	return scroll
}
