// Package owlxml is the external OWL/XML (RDF/XML serialization) reader
// and writer, the thin adapter between a file on disk and the core data
// model: every statement it produces or consumes is one of the sealed
// ontology.Statement shapes, never anything OWL/XML-specific. It
// generalizes this reasoner's original ChEBI/OBO-specific RDF/XML reader
// from a fixed set of OBO fields to the full TBox/RBox/ABox statement set,
// and adds the writer half that reader never needed because its own
// output format was JSON for a browser UI, not a round-trip of the input.
package owlxml

import (
	"encoding/xml"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/anusornc/dlreason/ontology"
)

const (
	nsOWL  = "http://www.w3.org/2002/07/owl#"
	nsRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsRDFS = "http://www.w3.org/2000/01/rdf-schema#"
)

const rdfTypeIRI = nsRDF + "type"

// Parse reads an OWL/XML document, stopping at the first malformed
// element.
func Parse(r io.Reader) (*ontology.Ontology, error) {
	ont, errs := parse(r, nil)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return ont, nil
}

// ParseWithRecovery reads an OWL/XML document, calling onError for every
// malformed element and skipping it when onError returns true. It returns
// the partially-built ontology plus every error collected, aggregated
// with multierr so a caller can report them together instead of only the
// first.
func ParseWithRecovery(r io.Reader, onError func(error) bool) (*ontology.Ontology, []error) {
	return parse(r, onError)
}

func parse(r io.Reader, onError func(error) bool) (*ontology.Ontology, []error) {
	arena := ontology.NewArena()
	ont := ontology.New(arena)
	dec := xml.NewDecoder(r)

	var combined error
	fail := func(err error) bool {
		combined = multierr.Append(combined, err)
		if onError == nil {
			return false
		}
		return onError(err)
	}

loop:
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			fail(err)
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case matchElement(se, nsRDF, "RDF"):
			for _, attr := range se.Attr {
				if attr.Name.Space == "xmlns" {
					if err := ont.AddPrefix(attr.Name.Local, attr.Value); err != nil {
						if !fail(err) {
							break loop
						}
					}
				}
			}
		case matchElement(se, nsOWL, "Class"):
			if err := parseClass(dec, se, arena, ont); err != nil {
				if !fail(err) {
					break loop
				}
			}
		case matchElement(se, nsOWL, "ObjectProperty"):
			if err := parseObjectProperty(dec, se, arena, ont); err != nil {
				if !fail(err) {
					break loop
				}
			}
		case matchElement(se, nsOWL, "NamedIndividual"):
			if err := parseIndividual(dec, se, arena, ont); err != nil {
				if !fail(err) {
					break loop
				}
			}
		default:
			if err := dec.Skip(); err != nil {
				if !fail(err) {
					break loop
				}
			}
		}
	}
	return ont, multierr.Errors(combined)
}

func matchElement(se xml.StartElement, ns, local string) bool {
	return se.Name.Space == ns && se.Name.Local == local
}

func getAttr(se xml.StartElement, ns, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == ns && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// parseClass reads an owl:Class element's rdfs:subClassOf and
// owl:equivalentClass children (each holding a plain resource, an
// owl:Restriction someValuesFrom or an owl:intersectionOf class),
// emitting SubClassOf / EquivalentClasses statements against
// arena-interned classes. Any other child, including an
// owl:intersectionOf placed directly under the named class, is skipped.
func parseClass(dec *xml.Decoder, se xml.StartElement, arena *ontology.Arena, ont *ontology.Ontology) error {
	about := getAttr(se, nsRDF, "about")
	if about == "" {
		return dec.Skip()
	}
	self := ontology.AtomicClass{ID: arena.InternClass(about)}

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDFS, "subClassOf"):
				expr, err := parseClassPosition(dec, el, arena)
				if err != nil {
					return err
				}
				ont.AddStatement(ontology.SubClassOf{LHS: self, RHS: expr})
			case matchElement(el, nsOWL, "equivalentClass"):
				expr, err := parseClassPosition(dec, el, arena)
				if err != nil {
					return err
				}
				ont.AddStatement(ontology.EquivalentClasses{Args: []ontology.ClassExpr{self, expr}})
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseClassPosition reads a single class-expression occupying one
// position (a plain rdf:resource, or a nested owl:Restriction /
// owl:Class[intersectionOf]).
func parseClassPosition(dec *xml.Decoder, el xml.StartElement, arena *ontology.Arena) (ontology.ClassExpr, error) {
	if res := getAttr(el, nsRDF, "resource"); res != "" {
		if err := dec.Skip(); err != nil {
			return nil, err
		}
		return ontology.AtomicClass{ID: arena.InternClass(res)}, nil
	}
	// el may itself be the owl:Class reference (an intersectionOf
	// collection member is handed to us this way), written with
	// rdf:about the same as a top-level class declaration.
	if matchElement(el, nsOWL, "Class") {
		if about := getAttr(el, nsRDF, "about"); about != "" {
			if err := dec.Skip(); err != nil {
				return nil, err
			}
			return ontology.AtomicClass{ID: arena.InternClass(about)}, nil
		}
	}
	// el may also already be the owl:Restriction itself, the same
	// collection-member situation as above for a non-atomic filler.
	if matchElement(el, nsOWL, "Restriction") {
		return parseRestriction(dec, arena)
	}

	var expr ontology.ClassExpr
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch inner := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(inner, nsOWL, "Restriction"):
				e, err := parseRestriction(dec, arena)
				if err != nil {
					return nil, err
				}
				expr = e
			case matchElement(inner, nsOWL, "Class") && getAttr(inner, nsRDF, "about") != "":
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				expr = ontology.AtomicClass{ID: arena.InternClass(getAttr(inner, nsRDF, "about"))}
			case matchElement(inner, nsOWL, "Class"):
				e, err := parseIntersection(dec, inner, arena)
				if err != nil {
					return nil, err
				}
				expr = e
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if expr == nil {
				return nil, fmt.Errorf("owlxml: empty class position at %s", el.Name.Local)
			}
			return expr, nil
		}
	}
}

func parseRestriction(dec *xml.Decoder, arena *ontology.Arena) (ontology.ClassExpr, error) {
	var prop ontology.PropertyID
	var filler ontology.ClassExpr
	havePredicate := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsOWL, "onProperty"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					prop = arena.InternProperty(res)
					havePredicate = true
				}
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case matchElement(el, nsOWL, "someValuesFrom"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					filler = ontology.AtomicClass{ID: arena.InternClass(res)}
					if err := dec.Skip(); err != nil {
						return nil, err
					}
				} else {
					f, err := parseClassPosition(dec, el, arena)
					if err != nil {
						return nil, err
					}
					filler = f
				}
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if !havePredicate || filler == nil {
				return nil, fmt.Errorf("owlxml: incomplete owl:Restriction")
			}
			return ontology.SomeValuesFrom{Property: prop, Filler: filler}, nil
		}
	}
}

func parseIntersection(dec *xml.Decoder, se xml.StartElement, arena *ontology.Arena) (ontology.ClassExpr, error) {
	var args []ontology.ClassExpr
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if matchElement(el, nsOWL, "intersectionOf") {
				members, err := parseDescriptionList(dec, arena)
				if err != nil {
					return nil, err
				}
				args = append(args, members...)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if len(args) < 2 {
				return nil, fmt.Errorf("owlxml: intersectionOf needs at least two members")
			}
			return ontology.ClassIntersection{Args: args}, nil
		}
	}
}

// parseDescriptionList reads an rdf:parseType="Collection" list of class
// descriptions, as used by intersectionOf (propertyChainAxiom members are
// read separately by parsePropertyChain).
func parseDescriptionList(dec *xml.Decoder, arena *ontology.Arena) ([]ontology.ClassExpr, error) {
	var out []ontology.ClassExpr
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			expr, err := parseClassPosition(dec, el, arena)
			if err != nil {
				return nil, err
			}
			out = append(out, expr)
		case xml.EndElement:
			return out, nil
		}
	}
}

func parseObjectProperty(dec *xml.Decoder, se xml.StartElement, arena *ontology.Arena, ont *ontology.Ontology) error {
	about := getAttr(se, nsRDF, "about")
	if about == "" {
		return dec.Skip()
	}
	self := arena.InternProperty(about)

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDFS, "subPropertyOf"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					ont.AddStatement(ontology.SubObjectPropertyOf{
						LHS: ontology.AtomicProperty{ID: self},
						RHS: arena.InternProperty(res),
					})
					if err := dec.Skip(); err != nil {
						return err
					}
				} else if err := dec.Skip(); err != nil {
					return err
				}
			case matchElement(el, nsOWL, "equivalentProperty"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					ont.AddStatement(ontology.EquivalentObjectProperties{
						Args: []ontology.PropertyID{self, arena.InternProperty(res)},
					})
				}
				if err := dec.Skip(); err != nil {
					return err
				}
			case matchElement(el, nsOWL, "propertyChainAxiom"):
				chain, err := parsePropertyChain(dec, arena)
				if err != nil {
					return err
				}
				ont.AddStatement(ontology.SubObjectPropertyOf{LHS: ontology.PropertyChain{Args: chain}, RHS: self})
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func parsePropertyChain(dec *xml.Decoder, arena *ontology.Arena) ([]ontology.PropertyID, error) {
	var out []ontology.PropertyID
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			res := getAttr(el, nsRDF, "resource")
			if res == "" {
				res = getAttr(el, nsRDF, "about")
			}
			if res != "" {
				out = append(out, arena.InternProperty(res))
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if len(out) < 2 {
				return nil, fmt.Errorf("owlxml: propertyChainAxiom needs at least two properties")
			}
			return out, nil
		}
	}
}

// parseIndividual reads an owl:NamedIndividual's rdf:type assertions
// (ClassAssertion) and arbitrary object-property child elements
// (ObjectPropertyAssertion).
func parseIndividual(dec *xml.Decoder, se xml.StartElement, arena *ontology.Arena, ont *ontology.Ontology) error {
	about := getAttr(se, nsRDF, "about")
	if about == "" {
		return dec.Skip()
	}
	self := arena.InternIndividual(about)

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDF, "type"):
				res := getAttr(el, nsRDF, "resource")
				if res != "" && res != nsOWL+"NamedIndividual" {
					ont.AddStatement(ontology.ClassAssertion{
						Class:      ontology.AtomicClass{ID: arena.InternClass(res)},
						Individual: self,
					})
				}
				if err := dec.Skip(); err != nil {
					return err
				}
			default:
				res := getAttr(el, nsRDF, "resource")
				if res != "" && el.Name.Space != "" && el.Name.Space != nsRDF {
					prop := arena.InternProperty(el.Name.Space + el.Name.Local)
					ont.AddStatement(ontology.ObjectPropertyAssertion{
						Property: prop,
						Subject:  self,
						Object:   arena.InternIndividual(res),
					})
				}
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}
