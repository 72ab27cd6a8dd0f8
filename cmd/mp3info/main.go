// mp3info is a tool which prints information about the objects of MP3 files:
// audio frame and metadata tag counts, total play time and bit rate
// statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mewkiz/mp3"
	"github.com/mewkiz/mp3/frame"
	"github.com/mewkiz/mp3/id3"
	"github.com/pkg/errors"
)

// flagVerbose specifies whether to print one line per scanned object.
var flagVerbose bool

func init() {
	flag.BoolVar(&flagVerbose, "v", false, "Print one line per scanned object.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: mp3info [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := info(path); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// info scans the MP3 file at path and prints a summary of its contents.
func info(path string) error {
	stream, err := mp3.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer stream.Close()

	var (
		nframes, nv1, nv2 int
		nbytes            int
		duration          float64
		minBitRate        uint32
		maxBitRate        uint32
		vbrMarker         string
	)
	for i := 0; ; i++ {
		o, err := stream.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return errors.WithStack(err)
		}
		switch o := o.(type) {
		case *frame.Frame:
			if flagVerbose {
				fmt.Printf("object %d: audio frame; %v %v, %d kbit/s, %d Hz, %v, %d bytes\n", i, o.Version, o.Layer, o.BitRate/1000, o.SampleRate, o.ChannelMode, o.FrameLength)
			}
			// A VBR summary frame carries no audio samples; record its marker
			// and exclude it from the aggregate statistics.
			if nframes == 0 {
				if o.IsXingHeader() {
					vbrMarker = "Xing"
					continue
				}
				if o.IsVbriHeader() {
					vbrMarker = "VBRI"
					continue
				}
			}
			nframes++
			nbytes += len(o.RawBytes)
			duration += float64(o.SampleCount) / float64(o.SampleRate)
			if minBitRate == 0 || o.BitRate < minBitRate {
				minBitRate = o.BitRate
			}
			if o.BitRate > maxBitRate {
				maxBitRate = o.BitRate
			}
		case *id3.V1Tag:
			if flagVerbose {
				fmt.Printf("object %d: ID3v1 tag; %d bytes\n", i, len(o.RawBytes))
			}
			nv1++
		case *id3.V2Tag:
			if flagVerbose {
				major, revision := o.Version()
				fmt.Printf("object %d: ID3v2.%d.%d tag; %d bytes\n", i, major, revision, len(o.RawBytes))
			}
			nv2++
		}
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  audio frames: %d (%d bytes)\n", nframes, nbytes)
	fmt.Printf("  ID3v1 tags:   %d\n", nv1)
	fmt.Printf("  ID3v2 tags:   %d\n", nv2)
	if len(vbrMarker) > 0 {
		fmt.Printf("  VBR marker:   %s\n", vbrMarker)
	}
	if nframes > 0 {
		fmt.Printf("  play time:    %.2f seconds\n", duration)
		if minBitRate == maxBitRate {
			fmt.Printf("  bit rate:     %d kbit/s\n", minBitRate/1000)
		} else {
			fmt.Printf("  bit rate:     %d-%d kbit/s (avg %.0f)\n", minBitRate/1000, maxBitRate/1000, float64(nbytes)*8/duration/1000)
		}
	}
	return nil
}
