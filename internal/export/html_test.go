package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderTestHTML(t *testing.T) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, buildTestPlan(), Options{Title: "Kitchen"}))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestWriteHTML_OnePagePerCut(t *testing.T) {
	doc := renderTestHTML(t)

	assert.Equal(t, "Kitchen - Print", doc.Find("title").Text())
	pages := doc.Find("div.page[data-seq]")
	assert.Equal(t, 4, pages.Length())

	first := pages.First()
	assert.Equal(t, "Cut 1 of 4", first.Find(".cut-number").Text())
	assert.Equal(t, "Side Panel", first.Find(".cut-label").Text())
	assert.Contains(t, first.Find(".dimensions").Text(), "600mm × 720mm × 18mm")
	assert.Equal(t, 1, first.Find("svg rect.cut").Length())
}

func TestWriteHTML_RotatedCut(t *testing.T) {
	doc := renderTestHTML(t)

	third := doc.Find("div.page[data-seq]").Eq(2)
	assert.Contains(t, third.Text(), "Rotated 90°")

	// The shelf is 300x560 turned, so its footprint is wider than long
	cut := third.Find("svg rect.cut")
	w, _ := cut.Attr("width")
	h, _ := cut.Attr("height")
	assert.NotEqual(t, w, h)
	assert.Equal(t, "34.4", w) // 560mm at 150/2440 scale
}

func TestWriteHTML_UnplacedSection(t *testing.T) {
	doc := renderTestHTML(t)

	items := doc.Find(".unplaced li")
	require.Equal(t, 1, items.Length())
	assert.Contains(t, items.Text(), "Glass Door")
	assert.Contains(t, items.Text(), "No stock sheet with 4mm thickness")
}

func TestWriteHTML_EscapesLabels(t *testing.T) {
	plan := buildTestPlan()
	plan.Sheets[0].Assignments[0].CutLabel = `<script>alert("x")</script>`
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, plan, Options{}))

	assert.False(t, strings.Contains(buf.String(), "<script>alert"))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find(".cut-label").First().Text())
}

func TestExportHTML_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "print.html")

	require.NoError(t, ExportHTML(path, buildTestPlan(), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestExportHTML_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "print.html")
	assert.ErrorIs(t, ExportHTML(path, emptyPlan(), Options{}), ErrEmptyPlan)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
