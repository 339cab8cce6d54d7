package markup

import "strings"

// FAQItem is one question/answer record extracted from an [FAQ] block.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExtractFAQ pulls every complete [FAQ]...[/FAQ] span out of the source and
// returns the Q/A records in order of appearance plus the remaining body text
// with the spans removed, so FAQ content is never rendered twice. Tag matching
// is case-insensitive; answers may span multiple lines. Unterminated spans or
// incomplete pairs contribute nothing and leave the body untouched.
func ExtractFAQ(src string) ([]FAQItem, string) {
	items := []FAQItem{}
	var body strings.Builder
	rest := src
	for {
		open := indexFold(rest, "[faq]")
		if open < 0 {
			break
		}
		close := indexFold(rest[open:], "[/faq]")
		if close < 0 {
			break
		}
		close += open
		items = append(items, parsePairs(rest[open+len("[faq]"):close])...)
		body.WriteString(rest[:open])
		rest = rest[close+len("[/faq]"):]
	}
	body.WriteString(rest)
	return items, body.String()
}

func parsePairs(span string) []FAQItem {
	items := []FAQItem{}
	rest := span
	for {
		qOpen := indexFold(rest, "[q]")
		if qOpen < 0 {
			break
		}
		qClose := indexFold(rest[qOpen:], "[/q]")
		if qClose < 0 {
			break
		}
		qClose += qOpen
		after := rest[qClose+len("[/q]"):]
		aOpen := indexFold(after, "[a]")
		if aOpen < 0 {
			break
		}
		aClose := indexFold(after[aOpen:], "[/a]")
		if aClose < 0 {
			break
		}
		aClose += aOpen
		question := strings.TrimSpace(rest[qOpen+len("[q]") : qClose])
		answer := strings.TrimSpace(after[aOpen+len("[a]") : aClose])
		if question != "" {
			items = append(items, FAQItem{Question: question, Answer: answer})
		}
		rest = after[aClose+len("[/a]"):]
	}
	return items
}
