package io

import (
	"bufio"
	"fmt"
)

const wordsPerLine = 12

// WriteCHeader writes buf as a C source fragment declaring
// "static const int <arrayName>[] = { ... };", twelve hex words per line.
func WriteCHeader(w *bufio.Writer, arrayName string, buf []uint32) error {
	if _, err := fmt.Fprintf(w, "static const int %s[] = {\n", arrayName); err != nil {
		return err
	}

	for i, word := range buf {
		if i%wordsPerLine == 0 {
			if i != 0 {
				if _, err := w.WriteString("\n"); err != nil {
					return err
				}
			}
			if _, err := w.WriteString("    "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "0x%08X, ", word); err != nil {
			return err
		}
	}

	if _, err := w.WriteString("\n};\n"); err != nil {
		return err
	}
	return w.Flush()
}
