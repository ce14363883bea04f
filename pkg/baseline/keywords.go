package baseline

import (
	"fmt"
	"regexp"
	"strings"
)

// KeywordSets maps a dataset family to its keyword lists, one list per
// summary sentence type.
var KeywordSets = map[string][][]string{
	"earthquake": {
		{"magnitude", "earthquake", "quake", "earthquakes", "quakes", "strike", "struck", "aftershock", "aftershocks", "depth", "tsunami", "tremor", "tremors", "hit"},
		{"epicenter", "north", "south", "east", "west", "northeast", "northwest", "southeast", "southwest", "located", "miles", "km", "kilometers", "felt", "centered"},
		{"destroyed", "collapse", "collapses", "collapsed", "building", "buildings", "road", "roads", "power", "devastated", "devastation", "flattened", "disrupted", "rubble", "fire"},
		{"dead", "injured", "injuries", "death", "killed", "fatalities", "loss", "toll", "casualties", "buried", "trapped", "outbreak", "missing"},
		{"a.m.", "p.m.", "gmt", "et", "pt", "hours", "time", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
		{"planes", "aid", "help", "helping", "warning", "warnings", "response", "rescue", "evacuate", "evacuation", "team", "teams", "supplies", "emergency", "reach", "reached", "reaching", "donation", "donate", "search", "searching", "affected", "disaster", "recover", "recovery", "survivors", "charity", "$", "hospital", "responders", "relief"},
	},
	"courtlistener": {
		{"petition", "appeals", "relief", "denial", "pleaded", "guilty"},
		{"argues", "claims", "contends", "filed"},
		{"conclude", "failed", "review", "abuse", "determined"},
		{"review", "affirmed", "affirm", "reverse", "reversed"},
	},
}

// Keywords is a set of lower-cased keywords per sentence type.
type Keywords []map[string]struct{}

func NewKeywords(lists [][]string) Keywords {
	k := make(Keywords, len(lists))
	for i, list := range lists {
		k[i] = make(map[string]struct{}, len(list))
		for _, word := range list {
			k[i][strings.ToLower(word)] = struct{}{}
		}
	}
	return k
}

// LookupKeywords returns the keyword set registered under name.
func LookupKeywords(name string) (Keywords, error) {
	lists, ok := KeywordSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown keyword set %q", name)
	}
	return NewKeywords(lists), nil
}

// Dollar signs and dotted abbreviations such as a.m. survive as words.
var reWord = regexp.MustCompile(`\$|[\pL\pN]+(?:\.[\pL\pN]+)+\.?|[\pL\pN]+`)

// Words returns the distinct lower-cased words of sentence.
func Words(sentence string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, word := range reWord.FindAllString(strings.ToLower(sentence), -1) {
		words[word] = struct{}{}
	}
	return words
}

// Score counts the distinct words of sentence found in the keywords of
// sentence type t.
func (k Keywords) Score(sentence string, t int) int {
	score := 0
	for word := range Words(sentence) {
		if _, ok := k[t][word]; ok {
			score++
		}
	}
	return score
}
