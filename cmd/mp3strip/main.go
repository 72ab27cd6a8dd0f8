// mp3strip is a tool which rewrites MP3 files with all ID3 metadata tags and
// garbage data removed, keeping only the audio frames.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mewkiz/mp3"
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
		if err := strip(path, force); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// strip copies the audio frames of the MP3 file at path to a new file,
// dropping metadata tags and unrecognized data.
func strip(path string, force bool) error {
	stream, err := mp3.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer stream.Close()

	dstPath := pathutil.TrimExt(path) + ".strip.mp3"
	if !force && osutil.Exists(dstPath) {
		return errors.Errorf("output file %q already present; use -f flag to force overwrite", dstPath)
	}
	w, err := os.Create(dstPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()
	bw := bufio.NewWriter(w)

	var nframes, nbytes int
	for {
		f, err := stream.NextFrame()
		if err != nil {
			if err == io.EOF {
				break
			}
			return errors.WithStack(err)
		}
		if _, err := bw.Write(f.RawBytes); err != nil {
			return errors.WithStack(err)
		}
		nframes++
		nbytes += len(f.RawBytes)
	}
	if err := bw.Flush(); err != nil {
		return errors.WithStack(err)
	}
	fmt.Printf("%s: wrote %d frames (%d bytes) to %q\n", path, nframes, nbytes, dstPath)
	return nil
}
