package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/achilleasa/go-pathtrace/rtclient"
	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/scene/io"
	"github.com/achilleasa/go-pathtrace/scene/reader"
	"github.com/achilleasa/go-pathtrace/types"
	"github.com/urfave/cli"
)

// outputMode identifies the single selected output target.
type outputMode int

const (
	modeRaytrace outputMode = iota
	modeBinary
	modeHeader
	modeBVReport
)

// Run implements the tool's single driver action: parse flags, load the
// scene by input extension, and dispatch to exactly one output mode.
func Run(ctx *cli.Context) error {
	setupLogging(ctx)

	in := ctx.String("in")
	if in == "" {
		return fmt.Errorf("missing required --in argument")
	}

	maxBV := uint32(ctx.Uint("max-bv"))
	if !types.IsPowOfTwo(maxBV) {
		return fmt.Errorf("--max-bv %d is not a power of two", maxBV)
	}

	layout, err := parseLayout(ctx.String("serfmt"))
	if err != nil {
		return err
	}

	mode, err := selectMode(ctx)
	if err != nil {
		return err
	}

	if mode != modeBVReport && ctx.String("out") == "" {
		return fmt.Errorf("missing required --out argument")
	}

	texcoordsEnabled := true

	var sc *scene.Scene
	var buf []uint32

	if strings.EqualFold(filepath.Ext(in), ".scene") {
		if mode == modeBVReport {
			sc, err = reader.Load(in, maxBV, texcoordsEnabled)
			if err != nil {
				return err
			}
			return printBVReport(sc)
		}

		sc, err = reader.Load(in, maxBV, texcoordsEnabled)
		if err != nil {
			return err
		}

		buf = make([]uint32, io.SerializedWordCount(sc, layout))
		if err := io.Serialize(sc, layout, buf); err != nil {
			return err
		}
	} else {
		if mode == modeBVReport {
			return fmt.Errorf("--bv-report requires a .scene input")
		}

		raw, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("cmd: %s", err.Error())
		}
		buf, err = loadBinary(raw)
		if err != nil {
			return err
		}
	}

	resX, resY := int(buf[1]), int(buf[2])

	if ctx.Bool("eswap") {
		io.ApplyByteSwap(buf)
	}

	out := ctx.String("out")
	switch mode {
	case modeBinary:
		return writeBinaryFile(out, buf)
	case modeHeader:
		return writeHeaderFile(out, buf)
	case modeRaytrace:
		return runRaytrace(ctx, buf, out, resX, resY)
	}
	return nil
}

func parseLayout(s string) (io.Layout, error) {
	switch s {
	case "dup":
		return io.Duplicated, nil
	case "nodup":
		return io.Indexed, nil
	default:
		return 0, fmt.Errorf("--serfmt must be dup or nodup, got %q", s)
	}
}

func selectMode(ctx *cli.Context) (outputMode, error) {
	selected := 0
	mode := modeRaytrace
	if ctx.Bool("tobin") {
		selected++
		mode = modeBinary
	}
	if ctx.Bool("tohdr") {
		selected++
		mode = modeHeader
	}
	if ctx.Bool("bv-report") {
		selected++
		mode = modeBVReport
	}
	if selected > 1 {
		return 0, fmt.Errorf("--tobin, --tohdr and --bv-report are mutually exclusive")
	}
	return mode, nil
}

// loadBinary interprets word 0 of raw as a possibly byteswapped magic
// number, per the driver's binary-input contract.
func loadBinary(raw []byte) ([]uint32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("cmd: binary input length %d is not word aligned", len(raw))
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 | uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
	}

	matches, needsSwap := io.ReadMagic(words[0])
	if !matches {
		return nil, fmt.Errorf("cmd: missing magic number")
	}
	if needsSwap {
		io.ApplyByteSwap(words)
	}
	return words, nil
}

func writeBinaryFile(path string, buf []uint32) error {
	out := make([]byte, len(buf)*4)
	for i, w := range buf {
		out[i*4] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("cmd: %s", err.Error())
	}
	logger.Noticef("wrote %d bytes to %s", len(out), path)
	return nil
}

func writeHeaderFile(path string, buf []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cmd: %s", err.Error())
	}
	defer f.Close()

	arrayName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	w := bufio.NewWriter(f)
	if err := io.WriteCHeader(w, arrayName, buf); err != nil {
		return fmt.Errorf("cmd: %s", err.Error())
	}
	logger.Noticef("wrote %d words to %s", len(buf), path)
	return nil
}

func runRaytrace(ctx *cli.Context, buf []uint32, out string, resX, resY int) error {
	hostPort := ctx.String("rt")
	parts := strings.SplitN(hostPort, ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("--rt must be host,port, got %q", hostPort)
	}
	host, portStr := parts[0], parts[1]
	if _, err := strconv.Atoi(portStr); err != nil {
		return fmt.Errorf("--rt port %q is not numeric", portStr)
	}

	payload := make([]byte, len(buf)*4)
	for i, w := range buf {
		payload[i*4] = byte(w)
		payload[i*4+1] = byte(w >> 8)
		payload[i*4+2] = byte(w >> 16)
		payload[i*4+3] = byte(w >> 24)
	}

	wantBytes := resX * resY * 3

	pixels, err := rtclient.RoundTrip(host+":"+portStr, payload, wantBytes)
	if err != nil {
		return err
	}

	if err := rtclient.SaveFramebuffer(out, resX, resY, pixels); err != nil {
		return err
	}
	logger.Noticef("saved %dx%d framebuffer to %s", resX, resY, out)
	return nil
}
