package source_test

import (
	"bytes"
	"reflect"
	"testing"

	"ippvm/pkg/interpreter"
	"ippvm/pkg/source"
)

func TestImageRoundTrip(t *testing.T) {
	doc := sampleDocument()

	var first, second bytes.Buffer
	if err := source.EncodeImage(&first, doc); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	if err := source.EncodeImage(&second, doc); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("encoding is not deterministic")
	}
	if !bytes.HasPrefix(first.Bytes(), []byte("IPPC")) {
		t.Errorf("missing magic: % x", first.Bytes()[:4])
	}

	got, err := source.DecodeImage(&first)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip changed the document:\nexpected %+v\ngot      %+v", doc, got)
	}
}

func TestDecodeImageErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no magic", []byte("<program/>")},
		{"empty", nil},
		{"corrupt payload", []byte("IPPC\xff\x00\x13")},
		{"truncated payload", []byte("IPPC\xa4\x01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := source.DecodeImage(bytes.NewReader(tt.data))
			if got := interpreter.KindOf(err); err == nil || got != interpreter.KindSourceFormat {
				t.Errorf("expected source format error, got %v", err)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data string
		want source.Format
	}{
		{"xml", `<?xml version="1.0"?><program/>`, source.FormatXML},
		{"xml after whitespace", "\n\t <program/>", source.FormatXML},
		{"xml after bom", "\xEF\xBB\xBF<program/>", source.FormatXML},
		{"image", "IPPC\xa1", source.FormatImage},
		{"text", ".IPPcode18\nBREAK\n", source.FormatText},
		{"text with comment", "# <not xml>\n.IPPcode18\n", source.FormatText},
		{"empty", "", source.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := source.Sniff([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
