package markup

import "strings"

// renderInline scans one line of text and emits inline HTML. Precedence is
// fixed: protected HTML spans pass through verbatim before any marker is
// considered, image syntax is tried before link syntax, and bold before
// italic. Unterminated markers are emitted as literal text.
func renderInline(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '<':
			if end, ok := protectedSpan(s, i); ok {
				b.WriteString(s[i:end])
				i = end
				continue
			}
			b.WriteString("&lt;")
			i++
		case strings.HasPrefix(s[i:], "!["):
			if out, end, ok := parseImage(s, i); ok {
				b.WriteString(out)
				i = end
				continue
			}
			b.WriteByte('!')
			i++
		case s[i] == '[':
			if out, end, ok := parseLink(s, i); ok {
				b.WriteString(out)
				i = end
				continue
			}
			b.WriteByte('[')
			i++
		case strings.HasPrefix(s[i:], "**"):
			if inner, end, ok := delimited(s, i, "**"); ok {
				b.WriteString("<strong>")
				b.WriteString(renderInline(inner))
				b.WriteString("</strong>")
				i = end
				continue
			}
			b.WriteString("**")
			i += 2
		case s[i] == '*':
			if inner, end, ok := delimited(s, i, "*"); ok {
				b.WriteString("<em>")
				b.WriteString(renderInline(inner))
				b.WriteString("</em>")
				i = end
				continue
			}
			b.WriteByte('*')
			i++
		case strings.HasPrefix(s[i:], "~~"):
			if inner, end, ok := delimited(s, i, "~~"); ok {
				b.WriteString("<del>")
				b.WriteString(renderInline(inner))
				b.WriteString("</del>")
				i = end
				continue
			}
			b.WriteString("~~")
			i += 2
		case s[i] == '`':
			if inner, end, ok := delimited(s, i, "`"); ok {
				b.WriteString(`<code class="inline-code">`)
				b.WriteString(escapeText(inner))
				b.WriteString(`</code>`)
				i = end
				continue
			}
			b.WriteByte('`')
			i++
		case s[i] == '&':
			b.WriteString("&amp;")
			i++
		case s[i] == '>':
			b.WriteString("&gt;")
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// protectedSpan reports the end offset of a raw HTML exception starting at i:
// <span ... style=...>...</span> or <u>...</u>, tags matched case-insensitively.
// The whole run, attributes included, is emitted verbatim so markers inside a
// style attribute never trigger inline substitution.
func protectedSpan(s string, i int) (int, bool) {
	rest := s[i:]
	if hasFoldPrefix(rest, "<u>") {
		if close := indexFold(rest, "</u>"); close >= 0 {
			return i + close + len("</u>"), true
		}
		return 0, false
	}
	if !hasFoldPrefix(rest, "<span") {
		return 0, false
	}
	open := strings.IndexByte(rest, '>')
	if open < 0 || !strings.Contains(strings.ToLower(rest[:open]), "style=") {
		return 0, false
	}
	if close := indexFold(rest, "</span>"); close >= 0 {
		return i + close + len("</span>"), true
	}
	return 0, false
}

// delimited returns the text between a marker at i and its next occurrence.
func delimited(s string, i int, marker string) (inner string, end int, ok bool) {
	start := i + len(marker)
	rel := strings.Index(s[start:], marker)
	if rel <= 0 {
		return "", 0, false
	}
	return s[start : start+rel], start + rel + len(marker), true
}

func parseImage(s string, i int) (string, int, bool) {
	alt, url, end, ok := bracketPair(s, i+1)
	if !ok {
		return "", 0, false
	}
	return `<img src="` + escapeAttr(url) + `" alt="` + escapeAttr(alt) + `" class="content-image" />`, end, true
}

func parseLink(s string, i int) (string, int, bool) {
	text, url, end, ok := bracketPair(s, i)
	if !ok {
		return "", 0, false
	}
	return `<a href="` + escapeAttr(url) + `" target="_blank" rel="noopener noreferrer">` + renderInline(text) + `</a>`, end, true
}

// bracketPair parses "[text](url)" starting at the opening bracket.
func bracketPair(s string, i int) (text, url string, end int, ok bool) {
	closeBracket := strings.IndexByte(s[i:], ']')
	if closeBracket < 0 {
		return "", "", 0, false
	}
	closeBracket += i
	if closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(s[closeBracket+2:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	closeParen += closeBracket + 2
	return s[i+1 : closeBracket], strings.TrimSpace(s[closeBracket+2 : closeParen]), closeParen + 1, true
}

func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}

func escapeAttr(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, sub string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(sub))
}
