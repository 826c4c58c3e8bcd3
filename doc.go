// Package kabunote embeds the stock-notebook analysis core in-process.
//
// An Engine analyzes free-form Japanese investment notes (sentiment, risk,
// stock mentions, suggested tags, keywords), classifies them by investment
// strategy, depth and content type, and ranks caller-supplied notebooks by
// query relevance or feature similarity. Nothing is stored: every call works
// on the records passed in, and the Engine is safe for concurrent use.
//
//	eng := kabunote.New()
//	res := eng.Analyze("トヨタの決算は好調。増配も期待できる。", "決算メモ")
//	fmt.Println(res.Sentiment, res.SuggestedTags)
//
// The HTTP service (cmd/kabunote) wires the same core to a Redis-backed
// notebook store.
package kabunote
