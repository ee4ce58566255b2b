package vocabulary

import "strings"

// BrickClassIRI converts a semantic class label from the mapping table into
// its Brick class IRI.
//
// Input format: space- or underscore-separated label (e.g. "Air Temperature
// Sensor" or "Air_Temperature_Sensor").
// Output format: "https://brickschema.org/schema/Brick#Air_Temperature_Sensor"
//
// Returns empty string for empty or whitespace-only input.
func BrickClassIRI(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	parts := strings.FieldsFunc(label, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	if len(parts) == 0 {
		return ""
	}

	// Brick class names capitalize each word and join with underscores
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}

	return Brick + strings.Join(parts, "_")
}

// LocalName strips namespace scaffolding from an IRI, keeping only the
// trailing local name: the substring after the last '#' or, if none, after
// the last '/'. Values with neither separator are returned unchanged.
//
// Examples:
//   - "https://brickschema.org/schema/Brick#Air_Temperature_Sensor" -> "Air_Temperature_Sensor"
//   - "http://example.org/site/X#Y.Z" -> "Y.Z"
//   - "http://qudt.org/vocab/unit/DEG_C" -> "DEG_C"
//   - "already-local" -> "already-local"
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// Namespace returns the namespace portion of an IRI: everything up to and
// including the last '#' or '/'. Returns empty string when the IRI has no
// separator.
func Namespace(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[:i+1]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[:i+1]
	}
	return ""
}

// IsBrickIRI reports whether an IRI belongs to the Brick schema or Brick
// reference namespaces.
func IsBrickIRI(iri string) bool {
	return strings.HasPrefix(iri, Brick) || strings.HasPrefix(iri, BrickRef)
}

// Expand resolves a prefixed name ("brick:Air_Temperature_Sensor") against a
// prefix table. Names without a known prefix are returned unchanged along
// with false.
func Expand(name string, prefixes map[string]string) (string, bool) {
	i := strings.Index(name, ":")
	if i <= 0 {
		return name, false
	}
	ns, ok := prefixes[name[:i]]
	if !ok {
		return name, false
	}
	return ns + name[i+1:], true
}
