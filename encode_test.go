package tilefish

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	src, err := FromBuffer(uniqueBuffer(16, 12), 16, 12)
	if err != nil {
		t.Fatal(err)
	}
	tiles := ComposeAll(src)

	for _, f := range []Format{FormatPNG, FormatTIFF} {
		t.Run(f.String(), func(t *testing.T) {
			encoded, err := EncodeAll(tiles, f)
			if err != nil {
				t.Fatalf("EncodeAll() error = %v", err)
			}
			for _, v := range Variants {
				e := encoded[v]
				if e.Variant != v || e.Format != f {
					t.Errorf("encoded[%v] = {%v, %v}", v, e.Variant, e.Format)
				}
				if e.Width != 16 || e.Height != 12 {
					t.Errorf("encoded[%v] size = %dx%d", v, e.Width, e.Height)
				}
				got, err := Decode(e)
				if err != nil {
					t.Fatalf("Decode(%v) error = %v", v, err)
				}
				if !got.Equal(tiles[v]) {
					t.Errorf("%v: decoded pixels differ from composited surface", v)
				}
			}
		})
	}
}

func TestEncodeRoundTrip_OpaqueBMP(t *testing.T) {
	src, err := FromBuffer(gridBuffer(4, 4), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	e, err := Encode(Compose(src, BothShift), BothShift, FormatBMP)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(e)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !got.Equal(Compose(src, BothShift)) {
		t.Error("BMP round trip is not lossless")
	}
}

// A single translucent pixel must survive every format that accepts it.
func TestEncodeTranslucentPixel(t *testing.T) {
	buf := gridBuffer(4, 4)
	buf[(2*4+1)*Channels+3] = 128
	src, err := FromBuffer(buf, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format  Format
		wantErr bool
	}{
		{FormatPNG, false},
		{FormatTIFF, false},
		{FormatBMP, true},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			e, err := Encode(src, Base, tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrEncode) {
					t.Fatalf("Encode() error = %v, want ErrEncode", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(e)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if c := got.Get(1, 2); c.A != 128 {
				t.Errorf("decoded alpha = %d, want 128", c.A)
			}
			if !got.Equal(src) {
				t.Error("round trip is not lossless")
			}
		})
	}
}

func TestEncode_InvalidFormat(t *testing.T) {
	_, err := Encode(NewPixmap(2, 2), Base, Format(42))
	if !errors.Is(err, ErrEncode) {
		t.Errorf("Encode() error = %v, want ErrEncode", err)
	}
}

func TestEncodedImage_DataURI(t *testing.T) {
	e, err := Encode(NewPixmap(1, 1), HShift, FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	uri := e.DataURI()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("DataURI() = %q, want prefix %q", uri, prefix)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if string(raw) != string(e.Data) {
		t.Error("DataURI payload differs from Data")
	}
	if got := e.Filename("tile"); got != "tile-hshift.png" {
		t.Errorf("Filename() = %q", got)
	}
	if e.IsZero() || !(EncodedImage{}).IsZero() {
		t.Error("IsZero() mismatch")
	}
}
