package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"image"
	"io"
)

// tgaHeader is the 18 byte uncompressed true colour TGA header.
type tgaHeader struct {
	IDLen      uint8
	ColorMap   uint8
	ImageType  uint8
	MapOrigin  uint16
	MapLen     uint16
	MapBPP     uint8
	XOrigin    uint16
	YOrigin    uint16
	Width      uint16
	Height     uint16
	BPP        uint8
	Descriptor uint8
}

// EncodeTGA writes img as a 32 bit top-left origin TGA with BGRA pixels.
func EncodeTGA(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return errors.New("tga: image too large")
	}
	bw := bufio.NewWriter(w)
	hdr := tgaHeader{
		ImageType:  2,
		Width:      uint16(b.Dx()),
		Height:     uint16(b.Dy()),
		BPP:        32,
		Descriptor: 0x20,
	}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	line := make([]byte, b.Dx()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			line[x*4] = row[x*4+2]
			line[x*4+1] = row[x*4+1]
			line[x*4+2] = row[x*4]
			line[x*4+3] = row[x*4+3]
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
