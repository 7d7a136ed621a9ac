// Command statichuff compresses and decompresses files with static Huffman
// coding.
//
//     statichuff [-j N] [-suffix .huf] [-dump] [-v] FILE...
//     statichuff -d [-j N] [-suffix .huf] [-v] FILE.huf...
//
// Each FILE is written to FILE.huf; with -d each FILE.huf is written back to
// FILE.  Files are processed in parallel, up to -j at a time.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	huffman "github.com/chronos-tachyon/statichuff"
)

type options struct {
	decompress bool
	suffix     string
	dump       bool
}

func main() {
	var (
		decompress = flag.Bool("d", false, "decompress instead of compress")
		suffix     = flag.String("suffix", ".huf", "suffix of compressed files")
		jobs       = flag.Int("j", runtime.NumCPU(), "maximum number of files processed at once")
		dump       = flag.Bool("dump", false, "write the frequency table, codes and tree of each file to stderr")
		verbose    = flag.Bool("v", false, "report each file")
	)
	flag.Parse()

	log := newLogger(*verbose)
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: statichuff [-d] [-j N] [-suffix S] [-dump] [-v] FILE...")
		os.Exit(2)
	}
	if *suffix == "" {
		log.Errorf("-suffix must not be empty")
		os.Exit(2)
	}

	opts := options{decompress: *decompress, suffix: *suffix, dump: *dump}
	if err := run(context.Background(), log, opts, *jobs, flag.Args()); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log Logger, opts options, jobs int, files []string) error {
	if jobs < 1 {
		jobs = 1
	}

	p := message.NewPrinter(language.English) // For commas between thousands
	var dumpMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, file := range files {
		file := file
		g.Go(func() error {
			// Check if another file already failed
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if opts.decompress {
				out, in, n, err := decompressFile(file, opts.suffix)
				if err != nil {
					return err
				}
				log.Infof("%s", p.Sprintf("%s: %d -> %d bytes (%s)", file, in, n, out))
				return nil
			}

			c, out, n, err := compressFile(file, opts.suffix)
			if err != nil {
				return err
			}
			log.Infof("%s", p.Sprintf("%s: %d -> %d bytes, %.1f%% (%s)", file, c.Len(), n, percent(n, c.Len()), out))
			if opts.dump {
				dumpMu.Lock()
				defer dumpMu.Unlock()
				fmt.Fprintf(os.Stderr, "== %s\n", file)
				if _, err := c.Dump(os.Stderr); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func compressFile(path string, suffix string) (*huffman.Codec, string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", 0, err
	}
	c, err := huffman.Build(data)
	if err != nil {
		return nil, "", 0, fmt.Errorf("%s: %w", path, err)
	}

	out := path + suffix
	n, err := writeFile(out, func(w io.Writer) (int64, error) {
		return c.Save(w)
	})
	if err != nil {
		return nil, "", 0, fmt.Errorf("%s: %w", out, err)
	}
	return c, out, n, nil
}

func decompressFile(path string, suffix string) (string, int64, int64, error) {
	out := strings.TrimSuffix(path, suffix)
	if out == path || out == "" {
		return "", 0, 0, fmt.Errorf("%s: name does not end in %q", path, suffix)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", 0, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, 0, err
	}

	c, _, err := huffman.Load(bufio.NewReader(f))
	if err != nil {
		return "", 0, 0, fmt.Errorf("%s: %w", path, err)
	}

	n, err := writeFile(out, func(w io.Writer) (int64, error) {
		n, err := w.Write(c.Data())
		return int64(n), err
	})
	if err != nil {
		return "", 0, 0, fmt.Errorf("%s: %w", out, err)
	}
	return out, info.Size(), n, nil
}

// writeFile creates path and hands fn a buffered writer on it.  A partially
// written file is removed.
func writeFile(path string, fn func(w io.Writer) (int64, error)) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(f)
	n, err := fn(bw)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return n, nil
}

func percent(part int64, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
