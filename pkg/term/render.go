package term

import (
	"bufio"
	"io"

	"github.com/mnafees/chip8/internal"
)

// Two display rows share one text row
var halfBlocks = [4]string{
	" ",      // neither
	"\u2580", // top pixel only
	"\u2584", // bottom pixel only
	"\u2588", // both
}

// Render writes the framebuffer as internal.ScreenHeight/2 lines of
// internal.ScreenWidth half-block characters.
func Render(w io.Writer, display *[internal.DisplaySize]byte) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < internal.ScreenHeight; y += 2 {
		for x := 0; x < internal.ScreenWidth; x++ {
			top := display[y*internal.ScreenWidth+x]
			bottom := display[(y+1)*internal.ScreenWidth+x]
			bw.WriteString(halfBlocks[top|bottom<<1])
		}
		bw.WriteString("\r\n")
	}
	return bw.Flush()
}
