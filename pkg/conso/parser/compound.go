package parser

import (
	"bytes"
	"errors"
	"io"

	"github.com/richardlehane/mscfb"
)

// oleSignature starts every OLE2 compound document, the container of legacy
// BIFF ".xls" workbooks.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// CompoundStreams reports whether ra holds an OLE2 compound document and, if
// so, lists the names of the streams it contains ("Workbook" or "Book" for
// BIFF workbooks).
func CompoundStreams(ra io.ReaderAt) (bool, []string, error) {
	head := make([]byte, len(oleSignature))
	n, err := ra.ReadAt(head, 0)
	if n < len(head) || !bytes.Equal(head, oleSignature) {
		if err != nil && !errors.Is(err, io.EOF) {
			return false, nil, err
		}
		return false, nil, nil
	}

	doc, err := mscfb.New(ra)
	if err != nil {
		return true, nil, err
	}

	var names []string
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		names = append(names, entry.Name)
	}
	return true, names, nil
}
