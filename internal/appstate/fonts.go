package appstate

import (
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// uiFace draws the sidebar, the status line and dialogs.
var uiFace font.Face = basicfont.Face7x13

var (
	labelFace     font.Face
	labelBoldFace font.Face
	messageFace   font.Face
)

func newFace(ttf []byte, size float64) font.Face {
	f, err := opentype.Parse(ttf)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	return face
}

func init() {
	labelFace = newFace(goregular.TTF, 12)
	labelBoldFace = newFace(gobold.TTF, 12)
	messageFace = newFace(goregular.TTF, 20)
}
