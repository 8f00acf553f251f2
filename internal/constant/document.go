package constant

import "strings"

type DocumentType string

const (
	DocumentTypePlans          DocumentType = "plans"
	DocumentTypeSpecifications DocumentType = "specifications"
	DocumentTypeAddendum       DocumentType = "addendum"
	DocumentTypeContract       DocumentType = "contract"
	DocumentTypeBidDocument    DocumentType = "bid_document"
	DocumentTypeOther          DocumentType = "other"
)

// DocumentTypes lists the selectable types in upload forms, in display order.
var DocumentTypes = []DocumentType{
	DocumentTypePlans,
	DocumentTypeSpecifications,
	DocumentTypeAddendum,
	DocumentTypeContract,
	DocumentTypeBidDocument,
	DocumentTypeOther,
}

// ClassifyFilename guesses a document type from the filename when the
// uploader did not pick one. Mirrors the backend's classification so the
// picker default matches what the server would store.
func ClassifyFilename(filename string) DocumentType {
	lower := strings.ToLower(filename)

	containsAny := func(terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("plan", "drawing", "dwg"):
		return DocumentTypePlans
	case containsAny("spec", "specification"):
		return DocumentTypeSpecifications
	case containsAny("addendum", "amendment"):
		return DocumentTypeAddendum
	case containsAny("contract", "agreement"):
		return DocumentTypeContract
	case containsAny("rfp", "request for proposal", "bid"):
		return DocumentTypeBidDocument
	default:
		return DocumentTypeOther
	}
}

// SpecificationDivisions are the CSI divisions offered by the section
// extraction pickers on the specifications tab and the document viewer.
var SpecificationDivisions = []string{
	"Division 01 - General Requirements",
	"Division 02 - Existing Conditions",
	"Division 03 - Concrete",
	"Division 04 - Masonry",
	"Division 05 - Metals",
	"Division 06 - Wood, Plastics, and Composites",
	"Division 07 - Thermal and Moisture Protection",
	"Division 08 - Openings",
	"Division 09 - Finishes",
	"Division 10 - Specialties",
	"Division 11 - Equipment",
	"Division 12 - Furnishings",
}
