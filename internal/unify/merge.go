package unify

import (
	"slices"
)

// Merge combines per-chain native transactions and token transfers into a
// single unified list. Each record is tagged with its source chain and
// kind, then the concatenation is stably sorted by timestamp, newest
// first, so records with equal timestamps keep their fetch order. An
// absent or empty chain entry simply contributes no records.
//
// Merge never fails: a chain whose fetch failed upstream is represented by
// an empty slice and disappears from the output.
func Merge(native map[string][]Transaction, transfers map[string][]Transaction) []Transaction {
	total := 0
	for _, txs := range native {
		total += len(txs)
	}
	for _, txs := range transfers {
		total += len(txs)
	}

	unified := make([]Transaction, 0, total)
	unified = appendTagged(unified, native, KindNative)
	unified = appendTagged(unified, transfers, KindERC20)

	slices.SortStableFunc(unified, func(a, b Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return unified
}

// appendTagged copies records from every chain into dst, stamping chain and
// kind. Chains are visited in sorted key order so timestamp ties resolve
// deterministically across runs.
func appendTagged(dst []Transaction, byChain map[string][]Transaction, kind Kind) []Transaction {
	for _, chain := range sortedKeys(byChain) {
		for _, tx := range byChain[chain] {
			tx.Chain = chain
			tx.Kind = kind
			dst = append(dst, tx)
		}
	}
	return dst
}

func sortedKeys(m map[string][]Transaction) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
