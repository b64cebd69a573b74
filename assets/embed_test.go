package assets

import "testing"

func TestDecodeImage(t *testing.T) {
	cases := []struct {
		path string
		w, h int
	}{
		{"red.png", 24, 24},
		{"assets/pig.png", 32, 32},
		{"/home/dev/slingshot/assets/column.png", 20, 70},
		{"background1.png", 1700, 700},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			img, err := DecodeImage(c.path)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != c.w || b.Dy() != c.h {
				t.Fatalf("expected %dx%d, got %dx%d", c.w, c.h, b.Dx(), b.Dy())
			}
		})
	}
}

func TestDecodeImageMissing(t *testing.T) {
	if _, err := DecodeImage("nope.png"); err == nil {
		t.Fatalf("expected error for missing asset")
	}
}
