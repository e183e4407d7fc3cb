package workspace

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archiver/v4"
	"github.com/opencontainers/go-digest"
)

var tgz = archiver.CompressedArchive{
	Archival:    archiver.Tar{},
	Compression: archiver.Gz{},
}

type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// Pack archives dir as tar.gz into intofile (omitted when empty, for
// digest-only runs) and returns the archive's digest and size.
func Pack(ctx context.Context, dir string, intofile string) (digest.Digest, int64, error) {
	files, err := archiver.FilesFromDisk(
		&archiver.FromDiskOptions{ClearAttributes: true},
		map[string]string{dir + string(os.PathSeparator): ""},
	)
	if err != nil {
		return "", 0, err
	}

	counter := &countingWriter{}
	d := digest.Canonical.Digester()
	writers := []io.Writer{d.Hash(), counter}

	if intofile != "" {
		if err := os.MkdirAll(filepath.Dir(intofile), 0o755); err != nil {
			return "", 0, err
		}
		f, err := os.Create(intofile)
		if err != nil {
			return "", 0, err
		}
		defer f.Close()
		writers = append(writers, f)
	}

	if err := tgz.Archive(ctx, io.MultiWriter(writers...), files); err != nil {
		return "", 0, err
	}
	return d.Digest(), counter.n, nil
}

// Unpack extracts a tar.gz produced by Pack into intodir.
func Unpack(ctx context.Context, intodir string, r io.Reader) error {
	return tgz.Extract(ctx, r, nil, func(ctx context.Context, f archiver.File) error {
		nameinlocal := filepath.Join(intodir, filepath.FromSlash(f.NameInArchive))
		if f.IsDir() {
			return os.MkdirAll(nameinlocal, f.Mode())
		}
		if err := os.MkdirAll(filepath.Dir(nameinlocal), 0o755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := os.OpenFile(nameinlocal, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}
		defer dst.Close()

		_, err = io.Copy(dst, src)
		return err
	})
}
