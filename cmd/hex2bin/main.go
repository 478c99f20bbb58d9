package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	outFile := flag.String("o", "", "Output file (default: input.bin)")
	pad := flag.Bool("pad", false, "Pad the image with the fill byte from address 0 (images up to 64K)")
	fill := flag.Uint("fill", 0, "Padding byte value")
	stats := flag.Bool("stats", false, "Print conversion statistics")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hex2bin [options] input.hex\n\nConverts a monitor hexdump to a binary image.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hex2bin program.hex\n")
		fmt.Fprintf(os.Stderr, "  hex2bin -pad -o program.bin program.hex\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *fill > 0xFF {
		fmt.Fprintf(os.Stderr, "error: -fill must be a byte value\n")
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	conv := NewConverter()
	conv.pad = *pad
	conv.fill = byte(*fill)

	image, start, err := conv.ConvertFileFromPath(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	outputPath := *outFile
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, ".hex") + ".bin"
	}
	if err := os.WriteFile(outputPath, image, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	if *stats {
		fmt.Printf("Input:  %s\n", inputPath)
		fmt.Printf("Output: %s (%d bytes)\n", outputPath, len(image))
	}
	fmt.Printf("Load address: $%04X\n", start)
}
