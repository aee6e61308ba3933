package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"ippvm/pkg/interpreter"
)

var imageMagic = []byte{'I', 'P', 'P', 'C'}

// cborEncMode uses canonical mode so equal documents encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("source: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

func isImage(data []byte) bool {
	return bytes.HasPrefix(data, imageMagic)
}

// EncodeImage writes doc as a program image: the magic bytes followed by
// the CBOR encoded document.
func EncodeImage(w io.Writer, doc *Document) error {
	payload, err := cborEncMode.Marshal(doc)
	if err != nil {
		return fmt.Errorf("source: marshal image: %w", err)
	}
	if _, err := w.Write(imageMagic); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// DecodeImage reads a program image written by EncodeImage.
func DecodeImage(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, interpreter.Errorf(interpreter.KindSourceInput, "reading image: %v", err)
	}
	if !isImage(data) {
		return nil, formatError("not a program image")
	}

	var doc Document
	if err := cbor.Unmarshal(data[len(imageMagic):], &doc); err != nil {
		return nil, formatError("corrupt program image: %v", err)
	}
	return &doc, nil
}
