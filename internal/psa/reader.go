package psa

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// The three record families share one physical file but use different
// line dialects. Product lines escape embedded commas with a
// backslash and are encoded Windows-1252; Planogram lines use
// double-quote grouping plus free-text continuation fields; Fixture
// lines are plain comma-separated.

const productPreambleLines = 3

func decodeWindows1252(data []byte) string {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// The decoder substitutes unmappable bytes, so this path is
		// not expected; fall back to a raw interpretation.
		return string(data)
	}
	return string(decoded)
}

func decodeUTF8Lossy(data []byte) string {
	return string(bytes.ToValidUTF8(data, nil))
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// parseProductLine splits a Product line on unescaped commas. A
// backslash protects the following character, so "TBL\, WHT" stays a
// single field. A trailing comma yields a trailing empty field.
func parseProductLine(line string) []string {
	var fields []string
	var current strings.Builder

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			current.WriteByte(line[i+1])
			i++
		case c == ',':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 || strings.HasSuffix(line, ",") {
		fields = append(fields, current.String())
	}
	return fields
}

// ProductRows extracts the Product record rows from a raw PSA
// payload. The first few lines of the file are header preamble and
// never contain records. The leading "Product" token is kept as the
// first field of each row.
func ProductRows(data []byte) [][]string {
	lines := splitLines(decodeWindows1252(data))
	if len(lines) <= productPreambleLines {
		return nil
	}

	var rows [][]string
	for _, line := range lines[productPreambleLines:] {
		fields := parseProductLine(line)
		if len(fields) > 0 && fields[0] == "Product" {
			rows = append(rows, fields)
		}
	}
	return rows
}

// splitQuoteAware splits on commas outside double quotes. The quote
// characters themselves are dropped.
func splitQuoteAware(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if inQuotes {
				current.WriteByte(c)
			} else {
				fields = append(fields, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, current.String())
	return fields
}

const (
	longTextThreshold  = 100
	continuationCutoff = 50
)

func startsContinuation(field string) bool {
	trimmed := strings.TrimSpace(field)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "<")
}

// mergeLongText re-joins free-text notes that the comma split tore
// apart. A field longer than longTextThreshold, or one whose trimmed
// form opens with '{' or '<', absorbs the fields that follow it until
// a field is both shorter than continuationCutoff and not itself a
// continuation opener.
func mergeLongText(fields []string) []string {
	var merged []string
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if len(field) > longTextThreshold || startsContinuation(field) {
			parts := []string{field}
			for i+1 < len(fields) {
				next := fields[i+1]
				if len(next) < continuationCutoff && !startsContinuation(next) {
					break
				}
				parts = append(parts, next)
				i++
			}
			merged = append(merged, strings.Join(parts, " "))
		} else {
			merged = append(merged, field)
		}
	}
	return merged
}

// PlanogramRows extracts the Planogram record rows. The leading
// "Planogram" token is kept as the first field so downstream column
// positions stay aligned with the raw layout.
func PlanogramRows(data []byte) [][]string {
	var rows [][]string
	for _, line := range splitLines(decodeUTF8Lossy(data)) {
		if !strings.HasPrefix(line, "Planogram,") {
			continue
		}
		rows = append(rows, mergeLongText(splitQuoteAware(line)))
	}
	return rows
}

// FixtureRows extracts the Fixture record rows with the leading
// "Fixture" token stripped.
func FixtureRows(data []byte) [][]string {
	var rows [][]string
	for _, line := range splitLines(decodeUTF8Lossy(data)) {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "Fixture,") {
			continue
		}
		rows = append(rows, strings.Split(trimmed, ",")[1:])
	}
	return rows
}
