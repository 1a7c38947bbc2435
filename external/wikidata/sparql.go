package wikidata

import (
	"strconv"
	"strings"

	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/valyala/bytebufferpool"
)

const (
	stadiumClass      = "wd:Q641226"
	footballClubClass = "wd:Q476028"
	labelLanguages    = "en,it,es,fr,de"
)

var literalSanitizer = strings.NewReplacer("'", " ", `\`, " ")

// sanitizeLiteral makes user text safe inside a single-quoted SPARQL
// literal.
func sanitizeLiteral(s string) string {
	return literalSanitizer.Replace(s)
}

// buildStadiumQuery renders the stadium search for one match mode. The
// label-or-alias form also returns one row per matching alias.
func buildStadiumQuery(query string, mode stadium.MatchMode, limit int) string {
	needle := sanitizeLiteral(query)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(s string) {
		_, _ = buf.WriteString(s)
		_ = buf.WriteByte('\n')
	}

	if mode == stadium.MatchLabelRegex {
		line("SELECT ?s ?sLabel ?lat ?lon ?countryLabel WHERE {")
	} else {
		line("SELECT ?s ?sLabel ?alias ?lat ?lon ?countryLabel WHERE {")
	}
	line("  ?s wdt:P31/wdt:P279* " + stadiumClass + "; wdt:P625 ?coord.")
	if mode != stadium.MatchLabelRegex {
		line("  OPTIONAL { ?s skos:altLabel ?alias FILTER(LANG(?alias) in ('en','it','es','fr','de')) }")
	}
	line("  OPTIONAL { ?s wdt:P17 ?country }")
	line("  SERVICE wikibase:label { bd:serviceParam wikibase:language '" + labelLanguages + "'. }")
	line("  BIND(geof:latitude(?coord) AS ?lat)")
	line("  BIND(geof:longitude(?coord) AS ?lon)")
	if mode == stadium.MatchLabelRegex {
		line("  FILTER(REGEX(LCASE(STR(?sLabel)), LCASE('" + needle + "')))")
	} else {
		line("  FILTER(CONTAINS(LCASE(STR(?sLabel)), LCASE('" + needle + "')) ||")
		line("         CONTAINS(LCASE(STR(?alias)), LCASE('" + needle + "')))")
	}
	line("}")
	line("LIMIT " + strconv.Itoa(limit))

	return buf.String()
}

func buildClubQuery(limit int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("SELECT ?team ?teamLabel ?countryLabel WHERE {\n")
	_, _ = buf.WriteString("  ?team wdt:P31/wdt:P279* " + footballClubClass + " ;\n")
	_, _ = buf.WriteString("        wdt:P17 ?country .\n")
	_, _ = buf.WriteString("  SERVICE wikibase:label { bd:serviceParam wikibase:language \"[AUTO_LANGUAGE]," + labelLanguages + "\". }\n")
	_, _ = buf.WriteString("}\n")
	if limit > 0 {
		_, _ = buf.WriteString("LIMIT " + strconv.Itoa(limit) + "\n")
	}
	return buf.String()
}
