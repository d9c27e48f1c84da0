// Package kml exports local frame trajectory pairs into a templated KML
// document for overlay on satellite imagery.
package kml

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/beevik/etree"
)

// Namespace is the KML namespace the template must declare on its root.
const Namespace = "http://www.opengis.net/kml/2.2"

// The template carries a document name slot followed by one name and one
// coordinates slot per path: estimated first, ground truth second.
const (
	minNameSlots  = 3
	minCoordSlots = 2
)

// TemplateError reports a template document whose structure cannot receive
// the exported paths.
type TemplateError struct {
	Path   string // Path of the template file.
	Reason string // Reason the structure was rejected.
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("malformed KML template %s: %s", e.Path, e.Reason)
}

// Exporter splices trajectory coordinates into a KML template and writes
// the resulting document. Each call is independent; repeated exports to the
// same output path overwrite the previous artifact.
type Exporter struct {
	templatePath string
	log          *slog.Logger
}

// NewExporter creates an Exporter bound to the given template file.
func NewExporter(templatePath string, log *slog.Logger) *Exporter {
	return &Exporter{templatePath: templatePath, log: log}
}

// Export converts the estimated path (x1, y1) and the ground-truth path
// (x2, y2) from the local frame to geodetic degrees, formats them, and
// writes them into the template's coordinate slots together with the two
// display labels. Either path may be nil to leave its slot untouched. When
// subsample is set, the ground-truth path is decimated before conversion.
//
// The template must declare the KML 2.2 namespace and contain at least
// three name slots and two coordinates slots; the 2nd and 3rd name slots
// receive the labels and the 1st and 2nd coordinates slots receive the
// paths, in document order. A structural shortfall fails with a
// *TemplateError before any output is written.
func (e *Exporter) Export(x1, y1, x2, y2 []float64, label1, label2 string, subsample bool, outputPath string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(e.templatePath); err != nil {
		return fmt.Errorf("failed to read KML template %s: %w", e.templatePath, err)
	}

	root := doc.Root()
	if root == nil {
		return &TemplateError{Path: e.templatePath, Reason: "document has no root element"}
	}
	if root.Tag != "kml" {
		return &TemplateError{Path: e.templatePath, Reason: fmt.Sprintf("root element is <%s>, want <kml>", root.Tag)}
	}
	if ns := root.SelectAttrValue("xmlns", ""); ns != Namespace {
		return &TemplateError{Path: e.templatePath, Reason: fmt.Sprintf("root namespace is %q, want %q", ns, Namespace)}
	}

	names := root.FindElements("//name")
	if len(names) < minNameSlots {
		return &TemplateError{
			Path:   e.templatePath,
			Reason: fmt.Sprintf("found %d name slots, need at least %d", len(names), minNameSlots),
		}
	}
	coords := root.FindElements("//coordinates")
	if len(coords) < minCoordSlots {
		return &TemplateError{
			Path:   e.templatePath,
			Reason: fmt.Sprintf("found %d coordinates slots, need at least %d", len(coords), minCoordSlots),
		}
	}

	names[1].SetText(label1)
	names[2].SetText(label2)

	if x1 != nil {
		if err := e.fillSlot(coords[0], x1, y1); err != nil {
			return fmt.Errorf("estimated path: %w", err)
		}
	}
	if x2 != nil {
		if subsample {
			x2 = Decimate(x2)
			y2 = Decimate(y2)
		}
		if err := e.fillSlot(coords[1], x2, y2); err != nil {
			return fmt.Errorf("ground-truth path: %w", err)
		}
	}

	ensureDeclaration(doc)
	doc.Indent(2)
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer out.Close()

	if _, err = doc.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write KML document to %s: %w", outputPath, err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("failed to flush KML document to %s: %w", outputPath, err)
	}

	e.log.Debug("KML artifact written", "output", outputPath, "template", e.templatePath)
	return nil
}

// ensureDeclaration prepends an XML declaration when the parsed template
// did not carry one, so the artifact always starts with <?xml ...?>.
func ensureDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	decl := doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.RemoveChild(decl)
	doc.InsertChildAt(0, decl)
}

// fillSlot converts one local frame path to geodetic degrees and stores the
// formatted coordinate records in the slot element.
func (e *Exporter) fillSlot(slot *etree.Element, x, y []float64) error {
	lat, lon, err := geo.ToGeodetic(x, y)
	if err != nil {
		return fmt.Errorf("failed to convert path to geodetic coordinates: %w", err)
	}
	formatted, err := FormatLatLon(lat, lon)
	if err != nil {
		return fmt.Errorf("failed to format path coordinates: %w", err)
	}
	slot.SetText(formatted)
	return nil
}
