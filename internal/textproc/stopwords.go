package textproc

var classifierStopwords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can", "had", "her", "was", "one", "our", "out",
	"has", "have", "his", "how", "its", "may", "new", "now", "old", "see", "two", "way", "who", "did", "get", "him",
	"let", "say", "she", "too", "use", "that", "with", "this", "from", "they", "will", "would", "there", "their",
	"what", "about", "which", "when", "were", "been", "than", "then", "them", "these", "those", "into", "also",
	"more", "some", "such", "only", "other", "over", "said", "says", "after", "before", "while", "where", "being",
	"each", "could", "should", "very", "just", "your", "because", "between", "through", "during", "under", "again",
	"further", "here", "most", "both", "same", "own", "off", "does", "doing", "until", "above", "below",
}

var summarizerStopwords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can", "had", "her", "was", "one", "our", "out",
	"has", "have", "his", "how", "its", "may", "now", "see", "way", "who", "did", "get", "him", "let", "she", "too",
	"use", "that", "with", "this", "from", "they", "will", "would", "there", "their", "what", "about", "which",
	"when", "were", "been", "than", "then", "them", "these", "those", "into", "also", "more", "some", "such", "only",
	"other", "over", "after", "before", "while", "where", "being", "each", "could", "should", "very", "just", "your",
	"because", "between", "through", "during", "under", "again", "further", "here", "most", "both", "same", "own",
	"off", "does", "doing", "until", "above", "below", "said", "says", "say", "according", "told", "per", "via",
	"among", "within", "without", "however", "although", "though", "even", "still", "yet", "many", "much", "well",
	"like", "don", "won", "isn", "aren", "wasn", "weren",
}
