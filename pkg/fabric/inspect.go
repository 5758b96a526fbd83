package fabric

import (
	"context"
	"errors"
	"os"

	"github.com/FabricAttachedMemory/Emulation/pkg/ident"
	"github.com/FabricAttachedMemory/Emulation/pkg/shm"
)

// Snapshot is the identification record found in a backing file.
type Snapshot struct {
	Path   string
	Record ident.Record
	// Complete is false when the file ends before the five named fields do.
	Complete bool
}

// Inspect maps the start of the backing file at path read-only and decodes
// the identification record a touch left there.
func Inspect(ctx context.Context, path string) (*Snapshot, error) {
	st, err := os.Stat(path)
	if err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, &OpError{Op: OpOpen, Path: path, Err: err}
	}
	size := int64(ident.RecordSize)
	if st.Mode().IsRegular() && st.Size() < size {
		size = st.Size()
	}
	if size == 0 {
		return &Snapshot{Path: path}, nil
	}

	region, err := shm.Open(ctx, shm.OpenOptions{Path: path, Size: int(size), ReadOnly: true})
	if err != nil {
		return nil, wrapMapError(path, err)
	}
	var buf [ident.RecordSize]byte
	copy(buf[:], region.Bytes())
	if err := region.Close(); err != nil {
		return nil, err
	}

	rec, err := ident.Parse(buf[:])
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Path:     path,
		Record:   rec,
		Complete: size >= ident.MinRecordSize,
	}, nil
}
