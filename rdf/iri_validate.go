package rdf

import (
	"fmt"
	"net/url"
)

// ValidateIRI validates an absolute IRI used as a namespace or base.
// Returns an error if the IRI is invalid, nil otherwise.
//
// The check is structural: a scheme starting with a letter, a successful
// url.Parse, and no characters that Turtle cannot carry inside <...>.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI: %w", ErrInvalidIRI)
	}
	if !IsAbsoluteIRI(iri) {
		return fmt.Errorf("IRI without scheme %q: %w", iri, ErrInvalidIRI)
	}
	if _, err := url.Parse(iri); err != nil {
		return fmt.Errorf("invalid IRI syntax %q: %v: %w", iri, err, ErrInvalidIRI)
	}
	return checkIRIRef(iri)
}

// checkIRIRef rejects characters that IRIREF does not allow unescaped.
func checkIRIRef(value string) error {
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch <= 0x20 {
			return fmt.Errorf("invalid control character at position %d in IRI %q: %w", i, value, ErrInvalidIRI)
		}
		switch ch {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return fmt.Errorf("invalid character '%c' at position %d in IRI %q: %w", ch, i, value, ErrInvalidIRI)
		}
	}
	return nil
}
