package proposaldoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/navigatingnc/bid-management-system/internal/util"
)

// US letter in mm.
const (
	pageWidth  = 215.9
	pageHeight = 279.4
	marginX    = 19.0
	marginY    = 19.0
)

var ErrFontUnavailable = errors.New("no proposal font configured")

// Renderer writes proposal previews as PDF files. Pages are laid out one
// canvas each and stitched together with pdfcpu.
type Renderer struct {
	fontPath  string
	outputDir string
	family    *canvas.FontFamily
}

// NewRenderer loads the font once. fontPath must point at a .ttf/.otf file;
// outputDir may be empty to use a temp directory.
func NewRenderer(fontPath, outputDir string) (*Renderer, error) {
	if fontPath == "" {
		return nil, ErrFontUnavailable
	}
	if outputDir == "" {
		outputDir = filepath.Join(util.GetTempDir(), "proposals")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	family := canvas.NewFontFamily("proposal")
	if err := family.LoadFontFile(fontPath, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("failed to load font file: %w", err)
	}
	if err := family.LoadFontFile(fontPath, canvas.FontBold); err != nil {
		// Single-weight fonts still render, bold text falls back to regular.
		_ = err
	}

	return &Renderer{fontPath: fontPath, outputDir: outputDir, family: family}, nil
}

// page is one canvas with a top-down cursor.
type page struct {
	c   *canvas.Canvas
	ctx *canvas.Context
	y   float64
}

func newPage() *page {
	c := canvas.New(pageWidth, pageHeight)
	ctx := canvas.NewContext(c)
	// Change coordination from bottom-left to top-left
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &page{c: c, ctx: ctx, y: marginY}
}

type layout struct {
	r     *Renderer
	pages []*page
}

func (l *layout) current() *page {
	return l.pages[len(l.pages)-1]
}

func (l *layout) face(size float64, style canvas.FontStyle) *canvas.FontFace {
	return l.r.family.Face(size, canvas.Hex("#1f2937"), style, canvas.FontNormal)
}

// text draws a wrapped block at the given x offset and width, breaking to a
// new page when the block would cross the bottom margin.
func (l *layout) text(face *canvas.FontFace, content string, x, width float64) {
	if content == "" {
		return
	}

	rt := canvas.NewRichText(face)
	rt.WriteString(content)
	box := rt.ToText(width, 0.0, canvas.Left, canvas.Top, 0.0, 0.0)
	height := box.Bounds().H()

	p := l.current()
	if p.y+height > pageHeight-marginY {
		l.pages = append(l.pages, newPage())
		p = l.current()
	}

	p.ctx.DrawText(x, p.y, box)
	p.y += height
}

func (l *layout) centered(face *canvas.FontFace, content string) {
	rt := canvas.NewRichText(face)
	rt.WriteString(content)
	box := rt.ToText(0.0, 0.0, canvas.Left, canvas.Top, 0.0, 0.0)
	width := box.Bounds().W()
	height := box.Bounds().H()

	p := l.current()
	if p.y+height > pageHeight-marginY {
		l.pages = append(l.pages, newPage())
		p = l.current()
	}

	p.ctx.DrawText((pageWidth-width)/2, p.y, box)
	p.y += height
}

func (l *layout) gap(mm float64) {
	l.current().y += mm
}

// Render lays the preview out and returns the path of the finished PDF
// inside the renderer's output directory.
func (r *Renderer) Render(preview Preview, outName string) (string, error) {
	l := &layout{r: r, pages: []*page{newPage()}}

	title := l.face(16, canvas.FontBold)
	heading := l.face(11, canvas.FontBold)
	body := l.face(9, canvas.FontRegular)
	small := l.face(8, canvas.FontRegular)

	contentWidth := pageWidth - 2*marginX

	// Letterhead
	l.centered(title, preview.Company.Name)
	l.centered(small, preview.Company.Address)
	l.centered(small, fmt.Sprintf("Phone: %s | Email: %s", preview.Company.Phone, preview.Company.Email))
	l.gap(8)

	l.centered(l.face(13, canvas.FontBold), preview.Title)
	l.gap(8)

	// Project and client columns
	half := contentWidth / 2
	topY := l.current().y
	l.text(heading, "Project Information", marginX, half)
	l.text(body, fmt.Sprintf("Project Name: %s\nProposal Date: %s\nBid Due Date: %s",
		preview.Project.Name,
		preview.ProposalDate.Format("January 2, 2006"),
		orNotSpecified(preview.Project.BidDueDate)), marginX, half-4)
	leftY := l.current().y
	l.current().y = topY
	l.text(heading, "Client Information", marginX+half, half)
	l.text(body, fmt.Sprintf("Client: %s\nEmail: %s",
		orNotSpecified(preview.Project.ClientName),
		orNotSpecified(preview.Project.ClientEmail)), marginX+half, half-4)
	if leftY > l.current().y {
		l.current().y = leftY
	}
	l.gap(6)

	l.text(heading, "Scope of Work", marginX, contentWidth)
	l.gap(2)
	l.text(body, preview.Scope, marginX, contentWidth)
	l.gap(6)

	if preview.Estimate != nil {
		l.text(heading, "Cost Estimate", marginX, contentWidth)
		l.gap(2)
		r.renderEstimateTable(l, preview.Estimate, contentWidth)
		l.gap(6)
	}

	l.text(heading, "Terms and Conditions", marginX, contentWidth)
	l.gap(2)
	l.text(body, preview.Terms, marginX, contentWidth)
	l.gap(14)

	l.text(body, "Accepted By:\n\n_________________________\nClient Signature / Date", marginX, half-4)
	l.current().y -= 16.0
	l.text(body, fmt.Sprintf("Submitted By:\n\n_________________________\n%s / Date", preview.Company.Name), marginX+half, half-4)

	return r.write(l, outName)
}

func (r *Renderer) renderEstimateTable(l *layout, estimate *EstimateInfo, contentWidth float64) {
	body := l.face(9, canvas.FontRegular)
	bold := l.face(9, canvas.FontBold)

	// Column x offsets within the content area.
	colDesc := marginX
	colQty := marginX + contentWidth*0.45
	colUnit := marginX + contentWidth*0.55
	colUnitCost := marginX + contentWidth*0.67
	colTotal := marginX + contentWidth*0.84

	row := func(face *canvas.FontFace, desc, qty, unit, unitCost, total string) {
		startY := l.current().y
		l.text(face, desc, colDesc, contentWidth*0.43)
		rowBottom := l.current().y
		for _, cell := range []struct {
			text string
			x    float64
			w    float64
		}{
			{qty, colQty, contentWidth * 0.09},
			{unit, colUnit, contentWidth * 0.11},
			{unitCost, colUnitCost, contentWidth * 0.16},
			{total, colTotal, contentWidth * 0.16},
		} {
			l.current().y = startY
			l.text(face, cell.text, cell.x, cell.w)
			if l.current().y > rowBottom {
				rowBottom = l.current().y
			}
		}
		l.current().y = rowBottom + 1.5
	}

	row(bold, "Description", "Qty", "Unit", "Unit Cost", "Total")
	for _, item := range estimate.Items {
		row(body, item.Description,
			formatQuantity(item.Quantity),
			item.Unit,
			formatMoney(item.UnitCost),
			formatMoney(item.TotalCost))
	}
	row(bold, "Total", "", "", "", formatMoney(estimate.TotalCost))
}

// tempFile reserves a scratch path in the shared temp directory.
func tempFile(pattern string) (string, error) {
	f, err := util.CreateTemp(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	f.Close()
	return f.Name(), nil
}

// write renders each page to its own temp PDF, merges them, then lets
// pdfcpu optimize the result in place.
func (r *Renderer) write(l *layout, outName string) (string, error) {
	pagePaths := make([]string, 0, len(l.pages))
	defer func() {
		for _, path := range pagePaths {
			os.Remove(path)
		}
	}()

	for i, p := range l.pages {
		path, err := tempFile(fmt.Sprintf("page_%d_*.pdf", i+1))
		if err != nil {
			return "", err
		}
		pagePaths = append(pagePaths, path)
		if err := renderers.Write(path, p.c); err != nil {
			return "", fmt.Errorf("failed to write PDF page %d: %w", i+1, err)
		}
	}

	outPath := filepath.Join(r.outputDir, outName)
	if len(pagePaths) == 1 {
		if err := api.OptimizeFile(pagePaths[0], outPath, nil); err != nil {
			return "", fmt.Errorf("failed to optimize PDF: %w", err)
		}
		return outPath, nil
	}

	merged, err := tempFile("merged_*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(merged)
	if err := api.MergeCreateFile(pagePaths, merged, false, nil); err != nil {
		return "", fmt.Errorf("failed to merge PDF pages: %w", err)
	}
	if err := api.OptimizeFile(merged, outPath, nil); err != nil {
		return "", fmt.Errorf("failed to optimize PDF: %w", err)
	}

	return outPath, nil
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
