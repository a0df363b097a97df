package command

// Vocabulary is the configurable keyword set the extractor recognizes.
// Passing it in explicitly keeps the grammar testable with custom word lists.
type Vocabulary struct {
	// MarkerPrefixes are the spoken words that introduce an attribute clause,
	// e.g. "hashtag project Errands" or "at due tomorrow".
	MarkerPrefixes []string

	// BulletWord separates list items inside a note clause.
	BulletWord string

	// GroceryTerms trigger the automatic shopping-context tag when they
	// appear in the task name or note items. Item words only, never the tag
	// word itself ("buy groceries" already says where it goes; tagging it
	// again would change explicitly spoken tag lists).
	GroceryTerms []string

	// GroceryTag is the location tag appended when a grocery term matches.
	GroceryTag string
}

// DefaultVocabulary returns the stock keyword set.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		MarkerPrefixes: []string{"hashtag", "at", "@"},
		BulletWord:     "bullet",
		GroceryTerms: []string{
			"milk", "bread", "eggs", "butter", "cheese", "yogurt",
			"apples", "bananas", "coffee", "tea", "sugar", "flour",
			"rice", "pasta", "cereal", "chicken", "beef", "fish",
			"onions", "potatoes", "tomatoes", "lettuce", "carrots",
		},
		GroceryTag: "groceries",
	}
}
