package deflate

// Level selects a time/ratio tradeoff for the LZ77 match search (spec
// §4.8). Higher levels walk longer hash chains and search harder for the
// longest possible match at each position; they never change the output
// format, only how hard the encoder looks for a cheaper one.
type Level int

const (
	// None disables LZ77 entirely: every block is emitted as Stored.
	// Useful when the caller
	// only wants DEFLATE framing, e.g. to satisfy a protocol that
	// requires it, without paying the match-search cost.
	None Level = iota
	// Fast performs a shallow, bounded search: short hash chains, no
	// lazy matching.
	Fast
	// Default balances ratio and speed: moderate chain length, lazy
	// matching enabled.
	Default
	// Best searches as hard as the format allows: long hash chains,
	// lazy matching, and a large "nice match" threshold.
	Best
)

// levelPolicy bundles a Level's matchParams plus the knobs that live
// outside window.go: whether the tokenizer should even attempt LZ77, and
// how many tokens to accumulate before a block is forced to flush.
type levelPolicy struct {
	search       bool // false only for None: skip LZ77 entirely
	params       matchParams
	lazy         bool
	tokenSoftCap int
}

// tokenSoftCap is spec §4.5's block-size guard: once a block's token
// buffer reaches this many entries, the Writer ends the block rather
// than growing it further, bounding both memory and the cost of
// rebuilding Huffman tables for one enormous block.
const tokenSoftCap = 16384

func policyForLevel(lvl Level) levelPolicy {
	switch lvl {
	case None:
		return levelPolicy{search: false, tokenSoftCap: tokenSoftCap}
	case Fast:
		return levelPolicy{
			search:       true,
			params:       matchParams{maxChain: 8, goodMatch: 8, niceMatch: 32},
			lazy:         false,
			tokenSoftCap: tokenSoftCap,
		}
	case Best:
		return levelPolicy{
			search:       true,
			params:       matchParams{maxChain: 1024, goodMatch: 32, niceMatch: 258},
			lazy:         true,
			tokenSoftCap: tokenSoftCap,
		}
	default: // Default
		return levelPolicy{
			search:       true,
			params:       matchParams{maxChain: 128, goodMatch: 16, niceMatch: 128},
			lazy:         true,
			tokenSoftCap: tokenSoftCap,
		}
	}
}

func (l Level) valid() bool { return l >= None && l <= Best }
