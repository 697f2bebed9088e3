package mnemonic

import (
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedLanguage is returned for a language code without a word
// table.
var ErrUnsupportedLanguage = errors.New("unsupported phrase language")

// Language is the code of a recovery phrase word table.
type Language string

const (
	// English is the default phrase language.
	English Language = "en"

	// Spanish phrase language.
	Spanish Language = "es"

	// French phrase language.
	French Language = "fr"

	// Italian phrase language.
	Italian Language = "it"

	// Japanese phrase language. Words are separated by an ideographic
	// space.
	Japanese Language = "ja"

	// Korean phrase language.
	Korean Language = "ko"

	// ChineseSimplified phrase language.
	ChineseSimplified Language = "zh"

	// ChineseTraditional phrase language.
	ChineseTraditional Language = "zh-tw"

	// Czech phrase language.
	Czech Language = "cs"
)

const (
	// wordSeparator joins the words of phrases in most languages.
	wordSeparator = " "

	// ideographicSpace joins the words of Japanese phrases.
	ideographicSpace = "　"
)

// wordTable is an immutable view over one BIP39 word list.
type wordTable struct {
	lang  Language
	words []string

	// index maps the NFKD form of every word to its position.
	index map[string]int
}

var (
	// languages is the order in which tables are tried when the language
	// of a phrase is not known.
	languages = []Language{
		English, Spanish, French, Italian, Japanese, Korean,
		ChineseSimplified, ChineseTraditional, Czech,
	}

	// tables holds the word table of every supported language. It is
	// populated once at start up and never written to afterwards.
	tables map[Language]*wordTable
)

func init() {
	lists := map[Language][]string{
		English:            wordlists.English,
		Spanish:            wordlists.Spanish,
		French:             wordlists.French,
		Italian:            wordlists.Italian,
		Japanese:           wordlists.Japanese,
		Korean:             wordlists.Korean,
		ChineseSimplified:  wordlists.ChineseSimplified,
		ChineseTraditional: wordlists.ChineseTraditional,
		Czech:              wordlists.Czech,
	}

	tables = make(map[Language]*wordTable, len(lists))
	for lang, list := range lists {
		words := make([]string, len(list))
		copy(words, list)

		index := make(map[string]int, len(words))
		for i, word := range words {
			index[norm.NFKD.String(word)] = i
		}

		tables[lang] = &wordTable{
			lang:  lang,
			words: words,
			index: index,
		}
	}
}

// ParseLanguage maps a language code onto a Language.
func ParseLanguage(code string) (Language, error) {
	lang := Language(code)
	if _, err := lang.table(); err != nil {
		return "", err
	}

	return lang, nil
}

// Languages returns all supported languages.
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}

// Separator returns the string placed between the words of a phrase.
func (l Language) Separator() string {
	if l == Japanese {
		return ideographicSpace
	}

	return wordSeparator
}

// table returns the word table of the language.
func (l Language) table() (*wordTable, error) {
	table, ok := tables[l]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, l)
	}

	return table, nil
}
