package rdf

import (
	"errors"
	"testing"
)

func TestValidateIRI(t *testing.T) {
	tests := []struct {
		name    string
		iri     string
		wantErr bool
	}{
		{
			name: "valid absolute IRI with http scheme",
			iri:  "http://ontologies.slub-dresden.de/exhibition/",
		},
		{
			name: "valid absolute IRI with custom scheme",
			iri:  "urn:example:resource",
		},
		{
			name: "valid IRI with fragment",
			iri:  "http://example.org/resource#fragment",
		},
		{
			name:    "empty IRI",
			iri:     "",
			wantErr: true,
		},
		{
			name:    "relative IRI",
			iri:     "/path/to/resource",
			wantErr: true,
		},
		{
			name:    "IRI with space",
			iri:     "http://example.org/a b",
			wantErr: true,
		},
		{
			name:    "IRI with angle bracket",
			iri:     "http://example.org/<x>",
			wantErr: true,
		},
		{
			name:    "IRI with invalid escape",
			iri:     "http://example.org/%zz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIRI(tt.iri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateIRI(%q) error = %v, wantErr %v", tt.iri, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidIRI) {
				t.Fatalf("expected ErrInvalidIRI, got %v", err)
			}
		})
	}
}

func TestIsValidPrefixName(t *testing.T) {
	valid := []string{"", "person", "exhibition_object", "a1", "x-y"}
	invalid := []string{"1abc", "_x", "a.", "has space", "ünicode"}
	for _, p := range valid {
		if !IsValidPrefixName(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range invalid {
		if IsValidPrefixName(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
