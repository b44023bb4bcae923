package parser

import (
	"github.com/semlang/semlang/internal/lexer"
)

type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType

	AllowEmpty bool

	// ElementName is used in "expected ..." messages.
	ElementName string
}

type delimitedResult[T any] struct {
	Items []T
}

// parseDelimited parses Separator-separated items up to Closing. It is
// entered with curTok on the first item (or on Closing for an empty list)
// and returns with curTok on Closing. Trailing separators are rejected.
// parseItem is entered on the first token of an item and must leave curTok
// on its last token; returning false aborts the list.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) (delimitedResult[T], bool) {
	var result delimitedResult[T]

	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}

	if cfg.Closing == "" {
		panic("parseDelimited requires a closing token")
	}

	elem := cfg.ElementName
	if elem == "" {
		elem = "element"
	}

	if p.curTok.Type == cfg.Closing {
		if cfg.AllowEmpty {
			return result, true
		}
		p.reportExpected(elem, p.curTok)
		return result, false
	}

	for {
		item, ok := parseItem(len(result.Items))
		if !ok {
			return result, false
		}
		result.Items = append(result.Items, item)

		switch p.peekTok.Type {
		case cfg.Separator:
			p.nextToken() // move to separator
			p.nextToken() // move to next element

			if p.curTok.Type == cfg.Closing {
				p.reportExpected(elem, p.curTok)
				return result, false
			}
			continue
		case cfg.Closing:
			p.nextToken()
			return result, true
		default:
			p.reportExpected(tokenName(cfg.Separator)+" or "+tokenName(cfg.Closing), p.peekTok)
			return result, false
		}
	}
}
