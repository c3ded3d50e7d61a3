// Package zip bundles stored files into a single zip archive.
package zip

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

// File is one archive member.
type File struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Write streams files into w as a zip archive, in the given order.
func Write(w io.Writer, files []File) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		hdr := &zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("zip: create %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return fmt.Errorf("zip: write %s: %w", f.Name, err)
		}
	}
	return zw.Close()
}
