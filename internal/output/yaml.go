package output

import (
	"fmt"
	"io"

	"github.com/annolint/annolint/internal/record"
)

// YAMLExporter outputs canonical records in the normalized authoring format.
// Multiple files are emitted as separate YAML documents, each preceded by a
// comment naming the source file.
type YAMLExporter struct{}

func (y *YAMLExporter) Export(w io.Writer, files []*record.File) error {
	for i, f := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}
		if len(files) > 1 {
			if _, err := fmt.Fprintf(w, "# %s\n", f.Path); err != nil {
				return err
			}
		}
		data, err := f.MarshalCanonical()
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing YAML: %w", err)
		}
	}
	return nil
}
