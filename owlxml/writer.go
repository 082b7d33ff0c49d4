package owlxml

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/anusornc/dlreason/ontology"
)

// Write serializes ont back to OWL/XML. It groups statements by subject
// entity the way a hand-authored ontology file does — one owl:Class
// element per class carrying all of that class's SubClassOf and
// equivalentClass children — rather than one top-level element per
// Statement, so a file round-tripped through Parse and Write reads the
// way an OWL editor would have produced it.
func Write(w io.Writer, ont *ontology.Ontology) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, `<?xml version="1.0"?>`)
	fmt.Fprint(bw, `<rdf:RDF xmlns:rdf="`+nsRDF+`" xmlns:rdfs="`+nsRDFS+`" xmlns:owl="`+nsOWL+`"`)
	for _, name := range sortedKeys(ont.Prefixes) {
		fmt.Fprintf(bw, "\n    xmlns:%s=%q", name, ont.Prefixes[name])
	}
	fmt.Fprintln(bw, ">")

	classChildren := make(map[ontology.ClassID][]ontology.Statement)
	propChildren := make(map[ontology.PropertyID][]ontology.Statement)
	individualChildren := make(map[ontology.IndividualID][]ontology.Statement)

	for _, st := range ont.Statements {
		switch s := st.(type) {
		case ontology.SubClassOf:
			if id, ok := s.LHS.(ontology.AtomicClass); ok {
				classChildren[id.ID] = append(classChildren[id.ID], st)
			}
		case ontology.EquivalentClasses:
			if len(s.Args) > 0 {
				if id, ok := s.Args[0].(ontology.AtomicClass); ok {
					classChildren[id.ID] = append(classChildren[id.ID], st)
				}
			}
		case ontology.SubObjectPropertyOf:
			switch lhs := s.LHS.(type) {
			case ontology.AtomicProperty:
				propChildren[lhs.ID] = append(propChildren[lhs.ID], st)
			case ontology.PropertyChain:
				propChildren[s.RHS] = append(propChildren[s.RHS], st)
			}
		case ontology.EquivalentObjectProperties:
			if len(s.Args) > 0 {
				propChildren[s.Args[0]] = append(propChildren[s.Args[0]], st)
			}
		case ontology.ClassAssertion:
			individualChildren[s.Individual] = append(individualChildren[s.Individual], st)
		case ontology.ObjectPropertyAssertion:
			individualChildren[s.Subject] = append(individualChildren[s.Subject], st)
		}
	}

	for _, id := range sortedClassIDs(classChildren) {
		writeClass(bw, ont.Arena, id, classChildren[id])
	}
	for _, id := range sortedPropertyIDs(propChildren) {
		writeProperty(bw, ont.Arena, id, propChildren[id])
	}
	for _, id := range sortedIndividualIDs(individualChildren) {
		writeIndividual(bw, ont.Arena, id, individualChildren[id])
	}

	fmt.Fprintln(bw, "</rdf:RDF>")
	return bw.Flush()
}

func writeClass(bw *bufio.Writer, arena *ontology.Arena, id ontology.ClassID, stmts []ontology.Statement) {
	fmt.Fprintf(bw, "  <owl:Class rdf:about=%q>\n", arena.ClassIRI(id))
	for _, st := range stmts {
		switch s := st.(type) {
		case ontology.SubClassOf:
			fmt.Fprint(bw, "    <rdfs:subClassOf>\n")
			writeClassExpr(bw, arena, s.RHS, 3)
			fmt.Fprint(bw, "    </rdfs:subClassOf>\n")
		case ontology.EquivalentClasses:
			for _, arg := range s.Args[1:] {
				fmt.Fprint(bw, "    <owl:equivalentClass>\n")
				writeClassExpr(bw, arena, arg, 3)
				fmt.Fprint(bw, "    </owl:equivalentClass>\n")
			}
		}
	}
	fmt.Fprint(bw, "  </owl:Class>\n")
}

func writeClassExpr(bw *bufio.Writer, arena *ontology.Arena, e ontology.ClassExpr, indent int) {
	pad := indentStr(indent)
	switch v := e.(type) {
	case ontology.AtomicClass:
		fmt.Fprintf(bw, "%s<owl:Class rdf:about=%q/>\n", pad, arena.ClassIRI(v.ID))
	case ontology.SomeValuesFrom:
		fmt.Fprintf(bw, "%s<owl:Restriction>\n", pad)
		fmt.Fprintf(bw, "%s  <owl:onProperty rdf:resource=%q/>\n", pad, arena.PropertyIRI(v.Property))
		fmt.Fprintf(bw, "%s  <owl:someValuesFrom>\n", pad)
		writeClassExpr(bw, arena, v.Filler, indent+2)
		fmt.Fprintf(bw, "%s  </owl:someValuesFrom>\n", pad)
		fmt.Fprintf(bw, "%s</owl:Restriction>\n", pad)
	case ontology.ClassIntersection:
		fmt.Fprintf(bw, "%s<owl:Class>\n", pad)
		fmt.Fprintf(bw, "%s  <owl:intersectionOf rdf:parseType=\"Collection\">\n", pad)
		for _, arg := range v.Args {
			writeClassExpr(bw, arena, arg, indent+2)
		}
		fmt.Fprintf(bw, "%s  </owl:intersectionOf>\n", pad)
		fmt.Fprintf(bw, "%s</owl:Class>\n", pad)
	}
}

func writeProperty(bw *bufio.Writer, arena *ontology.Arena, id ontology.PropertyID, stmts []ontology.Statement) {
	fmt.Fprintf(bw, "  <owl:ObjectProperty rdf:about=%q>\n", arena.PropertyIRI(id))
	for _, st := range stmts {
		switch s := st.(type) {
		case ontology.SubObjectPropertyOf:
			switch lhs := s.LHS.(type) {
			case ontology.AtomicProperty:
				fmt.Fprintf(bw, "    <rdfs:subPropertyOf rdf:resource=%q/>\n", arena.PropertyIRI(s.RHS))
			case ontology.PropertyChain:
				fmt.Fprint(bw, "    <owl:propertyChainAxiom rdf:parseType=\"Collection\">\n")
				for _, p := range lhs.Args {
					fmt.Fprintf(bw, "      <rdf:Description rdf:about=%q/>\n", arena.PropertyIRI(p))
				}
				fmt.Fprint(bw, "    </owl:propertyChainAxiom>\n")
			}
		case ontology.EquivalentObjectProperties:
			for _, arg := range s.Args[1:] {
				fmt.Fprintf(bw, "    <owl:equivalentProperty rdf:resource=%q/>\n", arena.PropertyIRI(arg))
			}
		}
	}
	fmt.Fprint(bw, "  </owl:ObjectProperty>\n")
}

func writeIndividual(bw *bufio.Writer, arena *ontology.Arena, id ontology.IndividualID, stmts []ontology.Statement) {
	fmt.Fprintf(bw, "  <owl:NamedIndividual rdf:about=%q>\n", arena.IndividualIRI(id))
	for _, st := range stmts {
		switch s := st.(type) {
		case ontology.ClassAssertion:
			if c, ok := s.Class.(ontology.AtomicClass); ok {
				fmt.Fprintf(bw, "    <rdf:type rdf:resource=%q/>\n", arena.ClassIRI(c.ID))
			}
		case ontology.ObjectPropertyAssertion:
			fmt.Fprintf(bw, "    <%s rdf:resource=%q/>\n", localName(arena.PropertyIRI(s.Property)), arena.IndividualIRI(s.Object))
		}
	}
	fmt.Fprint(bw, "  </owl:NamedIndividual>\n")
}

// localName splits an IRI's final path segment off so it can stand in as
// an element's tag. The element is written with no namespace, so it is
// not a valid QName against the file's declared prefixes, and
// parseIndividual, which only reads namespaced property elements, does
// not read it back: an ObjectPropertyAssertion does not survive a round
// trip through Write and Parse.
func localName(iri string) string {
	for i := len(iri) - 1; i >= 0; i-- {
		if iri[i] == '#' || iri[i] == '/' {
			return iri[i+1:]
		}
	}
	return iri
}

func indentStr(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedClassIDs(m map[ontology.ClassID][]ontology.Statement) []ontology.ClassID {
	out := make([]ontology.ClassID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedPropertyIDs(m map[ontology.PropertyID][]ontology.Statement) []ontology.PropertyID {
	out := make([]ontology.PropertyID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedIndividualIDs(m map[ontology.IndividualID][]ontology.Statement) []ontology.IndividualID {
	out := make([]ontology.IndividualID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
