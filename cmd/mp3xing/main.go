// mp3xing is a tool which prepends a freshly synthesized Xing VBR summary
// frame to MP3 files, recording the total frame and byte counts of the audio
// stream. Players use the summary to estimate play time of variable bit rate
// files without scanning the whole file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mewkiz/mp3"
	"github.com/mewkiz/mp3/frame"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
)

func main() {
	// Parse command line arguments.
	var (
		// force overwrite output file if already present.
		force bool
	)
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.Parse()
	for _, path := range flag.Args() {
		if err := addXing(path, force); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// addXing rewrites the MP3 file at path to a new file, prepending an Xing VBR
// summary frame covering the audio frames of the stream. A VBR summary frame
// already present in the source file is dropped, so rewriting is idempotent.
func addXing(path string, force bool) error {
	// First pass: count the audio frames and their total size.
	totalFrames, totalBytes, err := countFrames(path)
	if err != nil {
		return err
	}

	dstPath := pathutil.TrimExt(path) + ".vbr.mp3"
	if !force && osutil.Exists(dstPath) {
		return errors.Errorf("output file %q already present; use -f flag to force overwrite", dstPath)
	}
	w, err := os.Create(dstPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()
	bw := bufio.NewWriter(w)

	xing := frame.NewXingHeader(totalFrames, totalBytes)
	if _, err := bw.Write(xing.RawBytes); err != nil {
		return errors.WithStack(err)
	}

	// Second pass: copy the audio frames.
	stream, err := mp3.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer stream.Close()
	first := true
	for {
		f, err := stream.NextFrame()
		if err != nil {
			if err == io.EOF {
				break
			}
			return errors.WithStack(err)
		}
		if first {
			first = false
			if f.IsXingHeader() || f.IsVbriHeader() {
				continue
			}
		}
		if _, err := bw.Write(f.RawBytes); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.WithStack(err)
	}
	fmt.Printf("%s: wrote VBR summary of %d frames (%d bytes) to %q\n", path, totalFrames, totalBytes, dstPath)
	return nil
}

// countFrames returns the number of audio frames of the MP3 file at path and
// their total size in bytes, excluding any VBR summary frame already present.
func countFrames(path string) (totalFrames, totalBytes uint32, err error) {
	stream, err := mp3.Open(path)
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	defer stream.Close()
	first := true
	for {
		f, err := stream.NextFrame()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, 0, errors.WithStack(err)
		}
		if first {
			first = false
			if f.IsXingHeader() || f.IsVbriHeader() {
				continue
			}
		}
		totalFrames++
		totalBytes += uint32(len(f.RawBytes))
	}
	return totalFrames, totalBytes, nil
}
