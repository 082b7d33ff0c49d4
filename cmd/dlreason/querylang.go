package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anusornc/dlreason/query"
)

// parseQueryFile reads the CLI's small line-oriented query language:
//
//	PREFIX ex: <http://example.org/>
//	SELECT DISTINCT ?x ?y
//	WHERE
//	?x rdf:type ex:Mammal
//	?x ex:hasParent ?y
//	ORDER BY ?x
//	LIMIT 10
//
// Every non-blank, non-comment line before WHERE is a directive; every
// line after WHERE up to ORDER BY/LIMIT/OFFSET is a triple pattern of
// three whitespace-separated terms. A term starting with '?' is a
// Variable; otherwise it is resolved as a prefixed name or absolute IRI
// and wrapped as a Bound term.
func parseQueryFile(r io.Reader) (*query.Query, error) {
	prefixes := map[string]string{
		"rdf": "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	}
	q := &query.Query{}
	inWhere := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "PREFIX":
			if len(fields) != 3 {
				return nil, fmt.Errorf("dlreason: malformed PREFIX line %q", line)
			}
			name := strings.TrimSuffix(fields[1], ":")
			prefixes[name] = strings.Trim(fields[2], "<>")
		case "SELECT":
			rest := fields[1:]
			if len(rest) > 0 && strings.EqualFold(rest[0], "DISTINCT") {
				q.Distinct = true
				rest = rest[1:]
			} else if len(rest) > 0 && strings.EqualFold(rest[0], "REDUCED") {
				q.Reduced = true
				rest = rest[1:]
			}
			for _, v := range rest {
				q.Projection = append(q.Projection, strings.TrimPrefix(v, "?"))
			}
		case "WHERE":
			inWhere = true
		case "ORDER":
			if len(fields) < 3 || !strings.EqualFold(fields[1], "BY") {
				return nil, fmt.Errorf("dlreason: malformed ORDER BY line %q", line)
			}
			for _, v := range fields[2:] {
				desc := strings.HasPrefix(v, "DESC(")
				if desc {
					v = strings.TrimSuffix(strings.TrimPrefix(v, "DESC("), ")")
				}
				q.OrderBy = append(q.OrderBy, query.OrderTerm{Variable: strings.TrimPrefix(v, "?"), Desc: desc})
			}
		case "LIMIT":
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("dlreason: malformed LIMIT line %q: %w", line, err)
			}
			q.Limit = n
		case "OFFSET":
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("dlreason: malformed OFFSET line %q: %w", line, err)
			}
			q.Offset = n
		default:
			if !inWhere {
				return nil, fmt.Errorf("dlreason: triple pattern %q appears before WHERE", line)
			}
			tp, err := parseTriplePattern(fields, prefixes)
			if err != nil {
				return nil, err
			}
			q.Triples = append(q.Triples, tp)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return q, nil
}

func parseTriplePattern(fields []string, prefixes map[string]string) (query.TriplePattern, error) {
	if len(fields) != 3 {
		return query.TriplePattern{}, fmt.Errorf("dlreason: triple pattern needs exactly three terms, got %q", strings.Join(fields, " "))
	}
	s, err := resolveTerm(fields[0], prefixes)
	if err != nil {
		return query.TriplePattern{}, err
	}
	p, err := resolveTerm(fields[1], prefixes)
	if err != nil {
		return query.TriplePattern{}, err
	}
	o, err := resolveTerm(fields[2], prefixes)
	if err != nil {
		return query.TriplePattern{}, err
	}
	return query.TriplePattern{Subject: s, Predicate: p, Object: o}, nil
}

func resolveTerm(tok string, prefixes map[string]string) (query.Term, error) {
	if strings.HasPrefix(tok, "?") {
		return query.Variable{Name: strings.TrimPrefix(tok, "?")}, nil
	}
	if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
		return query.IRIRef(strings.Trim(tok, "<>")), nil
	}
	if idx := strings.Index(tok, ":"); idx > 0 {
		name, local := tok[:idx], tok[idx+1:]
		base, ok := prefixes[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", query.ErrUnknownPrefix, name)
		}
		return query.IRIRef(base + local), nil
	}
	return query.IRIRef(tok), nil
}

// formatRow renders a result row's projected variables in a fixed order
// for stable CLI output.
func formatRow(row query.Row, vars []string) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v + "=" + row[v]
	}
	return strings.Join(parts, " ")
}
