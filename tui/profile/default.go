package profile

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/CrestNiraj12/terminalwall/infra/imageio"
)

// DefaultImage is the silhouette shown until the user picks a photo.
var DefaultImage = sync.OnceValue(func() string {
	const size = 48
	bg := color.NRGBA{R: 0xD8, G: 0xDF, B: 0xEA, A: 0xFF}
	fg := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := bg
			dx, dy := x-size/2, y-size*3/8
			if dx*dx+dy*dy <= (size/6)*(size/6) {
				c = fg // head
			}
			bx, by := x-size/2, y-size
			if by < 0 && bx*bx+by*by <= (size*3/8)*(size*3/8) && y > size*5/8 {
				c = fg // shoulders
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return imageio.EncodeDataURI("image/png", buf.Bytes())
})
