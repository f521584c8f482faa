package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Frame file formats
const (
	FormatPNG = "png"
	FormatPPM = "ppm"
)

// FrameFilename returns the file name of frame index, e.g. frame_0003.png
func FrameFilename(index int, format string) string {
	return fmt.Sprintf("frame_%04d.%s", index, format)
}

// SaveFrame writes img into dir as frame index in the given format and
// returns the written path
func SaveFrame(img image.Image, dir string, index int, format string) (string, error) {
	var encode func(io.Writer, image.Image) error
	switch format {
	case FormatPNG:
		encode = png.Encode
	case FormatPPM:
		encode = WritePPM
	default:
		return "", fmt.Errorf("unknown frame format %q", format)
	}

	filename := filepath.Join(dir, FrameFilename(index, format))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create frame file: %w", err)
	}
	defer file.Close()

	if err := encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return filename, nil
}

// WritePPM encodes img as a plain-text P3 PPM, one pixel per line
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8)
		}
	}
	return bw.Flush()
}

// SaveAnimatedGIF writes the frames as a looping GIF. delay is in 100ths of
// a second per frame.
func SaveAnimatedGIF(path string, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to write")
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}

	for _, frame := range frames {
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), frame, frame.Bounds().Min)

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create gif: %w", err)
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
