package certgen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/noelyahan/mergi"
)

func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// ResizeToHeight scales the image to the given pixel height, preserving
// aspect ratio.
func ResizeToHeight(img image.Image, height uint) (image.Image, error) {
	bounds := img.Bounds()
	if bounds.Dy() == 0 || height == 0 {
		return nil, fmt.Errorf("cannot resize image with zero height")
	}

	width := uint(float64(bounds.Dx()) * float64(height) / float64(bounds.Dy()))
	if width == 0 {
		width = 1
	}

	return mergi.Resize(img, width, height)
}

type circleMask struct {
	center image.Point
	radius int
}

func (c *circleMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circleMask) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.radius, c.center.Y-c.radius, c.center.X+c.radius, c.center.Y+c.radius)
}

func (c *circleMask) At(x, y int) color.Color {
	dx, dy := float64(x-c.center.X)+0.5, float64(y-c.center.Y)+0.5
	if dx*dx+dy*dy < float64(c.radius*c.radius) {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}

// CircularCrop masks the image to its largest centered circle with a
// transparent outside, for the recipient photo.
func CircularCrop(img image.Image) image.Image {
	bounds := img.Bounds()

	diameter := bounds.Dx()
	if bounds.Dy() < diameter {
		diameter = bounds.Dy()
	}
	radius := diameter / 2

	center := image.Point{
		X: bounds.Min.X + bounds.Dx()/2,
		Y: bounds.Min.Y + bounds.Dy()/2,
	}

	dst := image.NewRGBA(image.Rect(0, 0, diameter, diameter))
	mask := &circleMask{center: center, radius: radius}

	srcOrigin := image.Point{X: center.X - radius, Y: center.Y - radius}
	draw.DrawMask(dst, dst.Bounds(), img, srcOrigin, mask, srcOrigin, draw.Over)

	return dst
}
