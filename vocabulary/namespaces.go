package vocabulary

// Namespace IRIs for the vocabularies a Brick building model draws on.
const (
	// Brick is the namespace of the Brick schema: classes, tags and
	// relationships for building equipment and points.
	Brick = "https://brickschema.org/schema/Brick#"

	// BrickRef is the namespace for external references (timeseries IDs,
	// BACnet objects) attached to Brick entities.
	BrickRef = "https://brickschema.org/schema/Brick/ref#"

	// Unit is the QUDT unit vocabulary referenced by brick:hasUnit.
	Unit = "http://qudt.org/vocab/unit/"

	// Core W3C vocabularies.
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	SKOS = "http://www.w3.org/2004/02/skos/core#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
)

// Well-known predicate IRIs used when walking a building model.
const (
	RDFType        = RDF + "type"
	RDFSLabel      = RDFS + "label"
	RDFSSubClass   = RDFS + "subClassOf"
	SKOSDefinition = SKOS + "definition"

	BrickHasUnit      = Brick + "hasUnit"
	BrickIsPointOf    = Brick + "isPointOf"
	BrickHasPoint     = Brick + "hasPoint"
	BrickFeeds        = Brick + "feeds"
	BrickIsFedBy      = Brick + "isFedBy"
	BrickHasPart      = Brick + "hasPart"
	BrickIsPartOf     = Brick + "isPartOf"
	BrickHasLocation  = Brick + "hasLocation"
	BrickTimeseries   = BrickRef + "hasTimeseriesReference"
	BrickTimeseriesID = BrickRef + "hasTimeseriesId"
	BrickExternalRef  = BrickRef + "hasExternalReference"
)

// StandardPrefixes returns the default prefix table preloaded by the sparql
// parser. The returned map is a fresh copy; callers may extend it freely.
func StandardPrefixes() map[string]string {
	return map[string]string{
		"brick": Brick,
		"ref":   BrickRef,
		"unit":  Unit,
		"rdf":   RDF,
		"rdfs":  RDFS,
		"owl":   OWL,
		"skos":  SKOS,
		"xsd":   XSD,
	}
}
