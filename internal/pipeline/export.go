package pipeline

import (
	"errors"

	"comic-grid/internal/core"
)

// Sink persists run artifacts. Naming is up to the implementation.
type Sink interface {
	WriteTinted(variant string, buf *core.Buffer) error
	WriteFiltered(variant string, buf *core.Buffer) error
	WriteGrid(buf *core.Buffer) error
	WriteComic(buf *core.Buffer) error
}

// Export writes every buffer the result holds. It keeps going after a failed
// write and returns all write errors joined.
func (r *Result) Export(sink Sink) error {
	var errs []error
	for _, v := range r.Variants {
		if v.Tinted != nil {
			errs = append(errs, sink.WriteTinted(v.Variant.Name, v.Tinted))
		}
		if v.Filtered != nil {
			errs = append(errs, sink.WriteFiltered(v.Variant.Name, v.Filtered))
		}
	}
	if r.Grid != nil {
		errs = append(errs, sink.WriteGrid(r.Grid))
	}
	if r.Comic != nil {
		errs = append(errs, sink.WriteComic(r.Comic))
	}
	return errors.Join(errs...)
}
