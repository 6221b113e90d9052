package migration

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/bson"
)

// maxDocumentSize is the BSON document limit enforced by MongoDB.
const maxDocumentSize = 16 * 1024 * 1024

// documentSource is the subset of *mongo.Cursor the importer needs, so dumps
// and live collections share one code path.
type documentSource interface {
	Next(ctx context.Context) bool
	Decode(v interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// dumpSource reads a mongodump .bson file: length-prefixed documents back to back.
type dumpSource struct {
	file *os.File
	r    *bufio.Reader
	doc  bson.Raw
	err  error
}

func openDump(path string) (*dumpSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open BSON file %s: %w", path, err)
	}
	return &dumpSource{file: file, r: bufio.NewReaderSize(file, 1<<20)}, nil
}

func (d *dumpSource) Next(ctx context.Context) bool {
	if d.err != nil || ctx.Err() != nil {
		if d.err == nil {
			d.err = ctx.Err()
		}
		return false
	}

	var header [4]byte
	if _, err := io.ReadFull(d.r, header[:]); err != nil {
		if !errors.Is(err, io.EOF) {
			d.err = fmt.Errorf("failed to read document header: %w", err)
		}
		return false
	}

	size := binary.LittleEndian.Uint32(header[:])
	if size < 5 || size > maxDocumentSize {
		d.err = fmt.Errorf("invalid document size %d", size)
		return false
	}

	doc := make([]byte, size)
	copy(doc, header[:])
	if _, err := io.ReadFull(d.r, doc[4:]); err != nil {
		d.err = fmt.Errorf("truncated document: %w", err)
		return false
	}
	d.doc = doc
	return true
}

func (d *dumpSource) Decode(v interface{}) error {
	return bson.Unmarshal(d.doc, v)
}

func (d *dumpSource) Err() error {
	return d.err
}

func (d *dumpSource) Close(context.Context) error {
	return d.file.Close()
}
