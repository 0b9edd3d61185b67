// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"io"
	"strings"

	godocx "github.com/fumiama/go-docx"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	defaultStyle = "Normal"
	underlineOff = "none"
)

// Load decodes the .docx package at path into a Document. Only body-level
// paragraphs are kept; tables and other block items are skipped.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}

	parsed, err := godocx.Parse(f, info.Size())
	if err != nil {
		return Document{}, fmt.Errorf("parsing document: %w", err)
	}

	names, toggles, err := loadParts(path)
	if err != nil {
		return Document{}, err
	}

	var paras []*godocx.Paragraph
	for _, item := range parsed.Document.Body.Items {
		if p, ok := item.(*godocx.Paragraph); ok {
			paras = append(paras, p)
		}
	}
	if len(toggles) != len(paras) {
		toggles = nil
	}

	var doc Document
	for i, p := range paras {
		var pt []runToggle
		if toggles != nil {
			pt = toggles[i]
		}
		doc.Paragraphs = append(doc.Paragraphs, convertParagraph(p, names, pt))
	}
	return doc, nil
}

// convertParagraph keeps the paragraph's direct runs. toggles, when it
// lines up with those runs, supplies the w:val-aware bold and italic flags.
func convertParagraph(p *godocx.Paragraph, names styleNames, toggles []runToggle) Paragraph {
	var styleID string
	if p.Properties != nil && p.Properties.Style != nil {
		styleID = p.Properties.Style.Val
	}

	var runs []*godocx.Run
	for _, child := range p.Children {
		if r, ok := child.(*godocx.Run); ok {
			runs = append(runs, r)
		}
	}
	if len(toggles) != len(runs) {
		toggles = nil
	}

	out := Paragraph{Style: names.resolve(styleID)}
	for i, r := range runs {
		run := convertRun(r)
		if toggles != nil {
			run.Bold = toggles[i].bold
			run.Italic = toggles[i].italic
		}
		out.Runs = append(out.Runs, run)
	}
	return out
}

// convertRun renders w:t text verbatim, w:tab as a tab and w:br as a
// newline.
func convertRun(r *godocx.Run) Run {
	var text strings.Builder
	for _, child := range r.Children {
		switch c := child.(type) {
		case *godocx.Text:
			text.WriteString(c.Text)
		case *godocx.Tab:
			text.WriteByte('\t')
		case *godocx.BarterRabbet:
			text.WriteByte('\n')
		}
	}

	out := Run{Text: text.String()}
	if props := r.RunProperties; props != nil {
		out.Bold = props.Bold != nil
		out.Italic = props.Italic != nil
		out.Underline = props.Underline != nil && props.Underline.Val != underlineOff
	}
	return out
}

// runToggle holds the resolved on/off state of a run's w:b and w:i.
type runToggle struct {
	bold   bool
	italic bool
}

// toggleOn reports whether a toggle property with the given w:val is on.
// An absent value means on.
func toggleOn(val string, present bool) bool {
	if !present {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "0", "false", "off":
		return false
	}
	return true
}

// decodeRunToggles walks document.xml and returns, for each body-level
// paragraph, the toggles of its direct runs in order.
func decodeRunToggles(r io.Reader) ([][]runToggle, error) {
	dec := xml.NewDecoder(r)
	var (
		stack []string
		paras [][]runToggle
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			switch {
			case pathIs(stack, "document", "body", "p"):
				paras = append(paras, []runToggle{})
			case pathIs(stack, "document", "body", "p", "r"):
				last := len(paras) - 1
				paras[last] = append(paras[last], runToggle{})
			case pathIs(stack, "document", "body", "p", "r", "rPr", "b"),
				pathIs(stack, "document", "body", "p", "r", "rPr", "i"):
				val, present := attrVal(t)
				runs := paras[len(paras)-1]
				run := &runs[len(runs)-1]
				if t.Name.Local == "b" {
					run.bold = toggleOn(val, present)
				} else {
					run.italic = toggleOn(val, present)
				}
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func pathIs(stack []string, path ...string) bool {
	if len(stack) != len(path) {
		return false
	}
	for i := range path {
		if stack[i] != path[i] {
			return false
		}
	}
	return true
}

func attrVal(e xml.StartElement) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Local == "val" {
			return a.Value, true
		}
	}
	return "", false
}

// styleNames maps paragraph styleIds to their display names.
type styleNames struct {
	byID         map[string]string
	defaultStyle string
}

// resolve returns the display name for id. An empty id means the
// paragraph uses the document's default paragraph style; an id missing
// from styles.xml is returned as is.
func (s styleNames) resolve(id string) string {
	if id == "" {
		return s.defaultStyle
	}
	if name, ok := s.byID[id]; ok {
		return name
	}
	return id
}

type stylesXML struct {
	Styles []styleXML `xml:"style"`
}

type styleXML struct {
	Type    string `xml:"type,attr"`
	StyleID string `xml:"styleId,attr"`
	Default string `xml:"default,attr"`
	Name    struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

// loadParts reads the style names from word/styles.xml and the run
// toggles from word/document.xml. styles.xml is optional; without it every
// styleId is used verbatim.
func loadParts(path string) (styleNames, [][]runToggle, error) {
	names := styleNames{byID: map[string]string{}, defaultStyle: defaultStyle}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return names, nil, fmt.Errorf("opening package %s: %w", path, err)
	}
	defer zr.Close()

	var toggles [][]runToggle
	for _, f := range zr.File {
		switch f.Name {
		case stylesPart:
			if err := readPart(f, func(r io.Reader) error { return decodeStyleNames(r, &names) }); err != nil {
				return names, nil, err
			}
		case documentPart:
			if err := readPart(f, func(r io.Reader) error {
				var err error
				toggles, err = decodeRunToggles(r)
				return err
			}); err != nil {
				return names, nil, err
			}
		}
	}
	return names, toggles, nil
}

func readPart(f *zip.File, decode func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	if err := decode(rc); err != nil {
		return fmt.Errorf("parsing %s: %w", f.Name, err)
	}
	return nil
}

func decodeStyleNames(r io.Reader, names *styleNames) error {
	var styles stylesXML
	if err := xml.NewDecoder(r).Decode(&styles); err != nil {
		return err
	}
	for _, s := range styles.Styles {
		if s.Type != "paragraph" || s.StyleID == "" {
			continue
		}
		name := s.Name.Val
		if name == "" {
			name = s.StyleID
		}
		names.byID[s.StyleID] = name
		if s.Default == "1" || s.Default == "true" {
			names.defaultStyle = name
		}
	}
	return nil
}
