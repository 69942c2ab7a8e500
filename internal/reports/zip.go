package reports

import (
	"context"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

const PhotosFileName = "photos.zip"

// WritePhotoArchive streams every .jpg file (any case) found under fsys into
// a zip on w. Entries are flat: base name with a lower-case .jpg extension.
// When two files share a name only the first one walked is kept.
func WritePhotoArchive(ctx context.Context, w io.Writer, fsys fs.FS, logger *zap.Logger) (int, error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	seen := make(map[string]string)
	count := 0

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		name, ok := archiveName(p)
		if !ok {
			return nil
		}
		if first, dup := seen[name]; dup {
			logger.Warn("duplicate photo name skipped",
				zap.String("entry", name),
				zap.String("kept", first),
				zap.String("skipped", p),
			)
			return nil
		}
		seen[name] = p

		if err := addFile(zw, fsys, p, name, d); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		_ = zw.Close()
		return count, err
	}
	return count, zw.Close()
}

// archiveName maps "dir/Photo.JPG" to "Photo.jpg"; false for anything that
// is not a jpg.
func archiveName(p string) (string, bool) {
	base := path.Base(p)
	ext := path.Ext(base)
	if !strings.EqualFold(ext, ".jpg") {
		return "", false
	}
	return strings.TrimSuffix(base, ext) + ".jpg", true
}

func addFile(zw *zip.Writer, fsys fs.FS, p, name string, d fs.DirEntry) error {
	src, err := fsys.Open(p)
	if err != nil {
		return err
	}
	defer src.Close()

	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	if info, err := d.Info(); err == nil {
		header.Modified = info.ModTime()
	}
	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
