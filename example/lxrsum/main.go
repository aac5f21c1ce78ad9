// lxrsum.go -- compute lxrhash digests of files or stdin, sha256sum-style.
//
// Author: PegNet contributors
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim is made to its
// suitability for any purpose.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pegnet/lxrhash"

	flag "github.com/opencoff/pflag"
)

func main() {
	var k int
	var passes int
	var seedHex string
	var digestSize int
	var cacheDir string
	var verbose bool

	usage := fmt.Sprintf("%s [options] [FILE ...]", os.Args[0])

	flag.IntVarP(&k, "map-bits", "k", lxrhash.DefaultK, "Use `K` as the ByteMap size exponent (M = 2^K)")
	flag.IntVarP(&passes, "passes", "p", lxrhash.DefaultPasses, "Use `N` shuffle passes when generating the ByteMap")
	flag.StringVarP(&seedHex, "seed", "s", hex.EncodeToString(lxrhash.DefaultSeed[:]), "Use `HEX` as the hash seed")
	flag.IntVarP(&digestSize, "digest-size", "d", lxrhash.DefaultDigestSize, "Digest length in bytes")
	flag.StringVarP(&cacheDir, "cache-dir", "c", "", "Use `DIR` as the ByteMap cache directory (default $HOME/.lxrhash)")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Report ByteMap generation progress to stderr")
	flag.Usage = func() {
		fmt.Printf("lxrsum - compute lxrhash digests\nUsage: %s\n", usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	args := flag.Args()

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		die("bad -seed value %q: %s", seedHex, err)
	}

	var verboseOut io.Writer
	if verbose {
		verboseOut = os.Stderr
	}

	lxr, err := lxrhash.New(uint8(k), passes, seed, digestSize, cacheDir, verboseOut)
	if err != nil {
		die("can't initialize lxrhash: %s", err)
	}
	defer lxr.Close()

	if len(args) == 0 {
		if err := sumStream(lxr, os.Stdin, "-"); err != nil {
			die("<stdin>: %s", err)
		}
		return
	}

	status := 0
	for _, fn := range args {
		if err := sumFile(lxr, fn); err != nil {
			warn("%s: %s", fn, err)
			status = 1
		}
	}
	os.Exit(status)
}

func sumFile(lxr *lxrhash.Lxr, fn string) error {
	fd, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer fd.Close()

	return sumStream(lxr, fd, fn)
}

func sumStream(lxr *lxrhash.Lxr, r io.Reader, label string) error {
	buf, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return err
	}

	digest := lxr.Hash(buf)
	fmt.Printf("%s  %s\n", hex.EncodeToString(digest), label)
	return nil
}

func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}

	os.Stderr.WriteString(s)
	os.Stderr.Sync()
}
