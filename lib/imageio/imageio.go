package imageio

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/oklog/ulid"
	"github.com/prometheus/prometheus/tsdb/fileutil"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	tempExtension = ".tmp"
)

type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

var (
	Formats = []Format{PNG, BMP, TIFF}
)

// String is used both by fmt.Print and by Cobra in help text
func (f *Format) String() string {
	if *f == "" {
		return string(PNG)
	}
	return string(*f)
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (f *Format) Set(v string) error {
	switch Format(strings.ToLower(v)) {
	case PNG:
		*f = PNG
	case BMP:
		*f = BMP
	case TIFF, "tif":
		*f = TIFF
	default:
		return errors.NewConfigError("unsupported image format %q, expected one of %v", v, Formats)
	}
	return nil
}

// Type is only used in help text
func (f *Format) Type() string {
	return "format"
}

func (f Format) Extension() string {
	if f == "" {
		return "." + string(PNG)
	}
	return "." + string(f)
}

func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG, "":
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return errors.NewConfigError("unsupported image format %q", string(format))
}

// WriteFile encodes img into a uniquely named temporary file next to file and
// moves it into place once it is completely written. Temporary files left
// behind by earlier runs are removed first.
func WriteFile(file string, img image.Image, format Format) error {
	tmp, err := newTempFile(file)
	if err != nil {
		return errors.Wrap(err, "failed to prepare temporary file for %s", file)
	}
	if err := writeFile(tmp, img, format); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to write %s", file)
	}
	if err := fileutil.Replace(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to move %s into place", file)
	}
	return nil
}

func writeFile(file string, img image.Image, format Format) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, img, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newTempFile(file string) (string, error) {
	uid := ulid.MustNew(ulid.Now(), rand.Reader)
	if err := deleteOldTempFiles(file, uid.Time()); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s%s", file, uid.String(), tempExtension), nil
}

func deleteOldTempFiles(file string, time uint64) error {
	parent := filepath.Dir(file)
	prefix := filepath.Base(file) + "-"
	files, err := os.ReadDir(parent)
	if err != nil {
		return err
	}
	for _, f := range files {
		fn := f.Name()
		if f.IsDir() || !strings.HasPrefix(fn, prefix) || filepath.Ext(fn) != tempExtension {
			continue
		}
		id, errU := ulid.ParseStrict(fn[len(prefix) : len(fn)-len(tempExtension)])
		if errU != nil {
			continue
		}
		if time > id.Time() {
			if err = os.Remove(filepath.Join(parent, fn)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFile decodes a png, bmp or tiff image.
func ReadFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.NewConfigError("could not open image %s: %v", file, err)
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, errors.WrapDataError(err, "could not decode image %s", file)
	}
	return img, nil
}
