package vision

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var maskWhite = color.RGBA{R: 255, G: 255, B: 255}

func TestExtractNilMask(t *testing.T) {
	e := NewContourExtractor(DefaultContourConfig())

	if _, ok := e.Extract(nil); ok {
		t.Error("expected no contour for nil mask")
	}
}

func TestExtractEmptyMask(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMat()
	defer mask.Close()

	if _, ok := e.Extract(&mask); ok {
		t.Error("expected no contour for empty mask")
	}
}

func TestExtractBlankMask(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()

	if _, ok := e.Extract(&mask); ok {
		t.Error("expected no contour for all-black mask")
	}
}

func TestExtractTinyBlobRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()
	// Near-point blob, contour area on the order of one pixel.
	gocv.Rectangle(&mask, image.Rect(320, 240, 322, 242), maskWhite, -1)

	if _, ok := e.Extract(&mask); ok {
		t.Error("expected sub-minimum blob to be rejected")
	}
}

func TestExtractOversizedBlobRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()
	// Roughly 89000 square pixels, above the default ceiling.
	gocv.Rectangle(&mask, image.Rect(100, 100, 400, 400), maskWhite, -1)

	if _, ok := e.Extract(&mask); ok {
		t.Error("expected oversized blob to be rejected")
	}
}

func TestExtractHandSizedBlob(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()
	// Roughly 19700 square pixels, inside the default band.
	gocv.Rectangle(&mask, image.Rect(200, 150, 400, 250), maskWhite, -1)

	c, ok := e.Extract(&mask)
	if !ok {
		t.Fatal("expected hand-sized blob to be accepted")
	}
	if len(c.Points) == 0 {
		t.Error("expected contour points to be populated")
	}
	if c.Area < DefaultMinArea || c.Area > DefaultMaxArea {
		t.Errorf("contour area = %.0f, want within [%.0f, %.0f]", c.Area, float64(DefaultMinArea), float64(DefaultMaxArea))
	}
}

func TestExtractPicksLargestBlob(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()
	// Both blobs sit inside the band; the left one is larger.
	gocv.Rectangle(&mask, image.Rect(50, 100, 200, 200), maskWhite, -1)
	gocv.Rectangle(&mask, image.Rect(400, 100, 500, 180), maskWhite, -1)

	c, ok := e.Extract(&mask)
	if !ok {
		t.Fatal("expected a contour")
	}
	if c.Area < 12000 {
		t.Errorf("contour area = %.0f, expected the larger blob (~14800)", c.Area)
	}

	// Every contour point should belong to the larger blob.
	for _, p := range c.Points {
		if p.X > 250 {
			t.Fatalf("contour point %v belongs to the smaller blob", p)
		}
	}
}

func TestExtractLargestOutOfBandYieldsNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(DefaultContourConfig())

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()
	// Largest blob exceeds the ceiling; the in-band candidate is not the
	// largest, so the frame yields nothing.
	gocv.Rectangle(&mask, image.Rect(0, 0, 350, 350), maskWhite, -1)
	gocv.Rectangle(&mask, image.Rect(450, 300, 600, 400), maskWhite, -1)

	if _, ok := e.Extract(&mask); ok {
		t.Error("expected rejection when the largest blob is out of band")
	}
}

func TestExtractCustomBand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	e := NewContourExtractor(ContourConfig{MinArea: 10, MaxArea: 500})

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer mask.Close()
	gocv.Rectangle(&mask, image.Rect(100, 100, 120, 120), maskWhite, -1)

	c, ok := e.Extract(&mask)
	if !ok {
		t.Fatal("expected small blob to pass a relaxed band")
	}
	if c.Area > 500 {
		t.Errorf("contour area = %.0f, want at most 500", c.Area)
	}
}
