package services

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Token is a word with its universal part-of-speech tag (NOUN, PROPN, ...).
type Token struct {
	Text string
	POS  string
}

type Tagger interface {
	Tag(text string) ([]Token, error)
}

type proseTagger struct {
	model *prose.Model
}

// NewProseTagger loads prose's averaged perceptron model once; every Tag call
// reuses it read-only. Penn Treebank tags are mapped to universal tags.
func NewProseTagger() (Tagger, error) {
	doc, err := prose.NewDocument("",
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load tagger model: %w", err)
	}
	return &proseTagger{model: doc.Model}, nil
}

// Tag implements Tagger.
func (p *proseTagger) Tag(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, tok := range toks {
		out = append(out, Token{Text: tok.Text, POS: UniversalPOS(tok.Tag, tok.Text)})
	}
	return out, nil
}

var auxiliaries = map[string]bool{
	"be": true, "am": true, "is": true, "are": true, "was": true, "were": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "having": true,
	"do": true, "does": true, "did": true,
	"will": true, "would": true, "shall": true, "should": true,
	"can": true, "could": true, "may": true, "might": true, "must": true,
}

var subordinators = map[string]bool{
	"because": true, "if": true, "that": true, "while": true, "although": true,
	"though": true, "whether": true, "since": true, "unless": true, "until": true,
	"once": true, "so": true, "than": true, "as": true,
}

// UniversalPOS maps a Penn Treebank tag to the universal tag set. Auxiliary
// verbs and subordinating conjunctions are not distinguished by PTB, so they
// are recovered from the word itself.
func UniversalPOS(ptb, word string) string {
	lower := strings.ToLower(word)

	switch ptb {
	case "NN", "NNS":
		return "NOUN"
	case "NNP", "NNPS":
		return "PROPN"
	case "JJ", "JJR", "JJS", "AFX":
		return "ADJ"
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return "PRON"
	case "MD":
		return "AUX"
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		if auxiliaries[lower] {
			return "AUX"
		}
		return "VERB"
	case "CC":
		return "CCONJ"
	case "IN":
		if subordinators[lower] {
			return "SCONJ"
		}
		return "ADP"
	case "RP":
		return "ADP"
	case "DT", "PDT", "WDT":
		return "DET"
	case "RB", "RBR", "RBS", "WRB":
		return "ADV"
	case "CD":
		return "NUM"
	case "TO", "POS":
		return "PART"
	case "UH":
		return "INTJ"
	case "SYM", "$", "#":
		return "SYM"
	case ".", ",", ":", "``", "''", "(", ")", "-LRB-", "-RRB-", "HYPH", "NFP":
		return "PUNCT"
	default:
		return "X"
	}
}
