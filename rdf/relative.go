package rdf

import "strings"

// RelativeIRIMarker is a pseudo-scheme prepended to IRIs that must stay
// relative. The JSON-LD processor only keeps absolute IRIs, and "null:" makes
// any relative reference look absolute without ever resolving to anything.
// CleanupQuad strips it again once quads come out of the decoder.
const RelativeIRIMarker = "null:"

// IsAbsoluteIRI reports whether s starts with an RFC 3986 scheme.
func IsAbsoluteIRI(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch >= '0' && ch <= '9' || ch == '+' || ch == '-' || ch == '.'):
		case i > 0 && ch == ':':
			return true
		default:
			return false
		}
	}
	return false
}

// MarkRelative prefixes relative IRIs with RelativeIRIMarker. Absolute IRIs
// are returned unchanged.
func MarkRelative(iri string) string {
	if IsAbsoluteIRI(iri) {
		return iri
	}
	return RelativeIRIMarker + iri
}

// UnmarkTerm strips RelativeIRIMarker from an IRI term. The second result
// reports whether the term was rewritten; non-IRI terms and IRIs without the
// marker are returned as-is.
func UnmarkTerm(t Term) (Term, bool) {
	iri, ok := t.(IRI)
	if !ok {
		return t, false
	}
	if !strings.HasPrefix(iri.Value, RelativeIRIMarker) {
		return t, false
	}
	return IRI{Value: iri.Value[len(RelativeIRIMarker):]}, true
}

// CleanupQuad removes the relative IRI marker from every position of q.
// When nothing changes, q itself is returned.
func CleanupQuad(q Quad) Quad {
	s, sChanged := UnmarkTerm(q.S)
	p, pChanged := UnmarkTerm(q.P)
	o, oChanged := UnmarkTerm(q.O)
	g, gChanged := UnmarkTerm(q.G)
	if !sChanged && !pChanged && !oChanged && !gChanged {
		return q
	}
	return Quad{S: s, P: p.(IRI), O: o, G: g}
}
