package table

import (
	"slices"

	"github.com/arloliu/scanjoin/format"
)

// buildRowIndex computes the sorted row index of a join.
//
// NoFill takes the intersection of all columns' position references; every
// other rule takes the union. Either way the result is strictly ascending.
func buildRowIndex(cols []*Column, rule format.FillRule) []PosRef {
	if len(cols) == 0 {
		return nil
	}

	if rule == format.NoFill {
		return intersectPosRefs(cols)
	}

	return unionPosRefs(cols)
}

// intersectPosRefs merges k sorted sequences keeping only references present
// in all of them. Runs in O(total samples) with one forward index per column.
func intersectPosRefs(cols []*Column) []PosRef {
	shortest := 0
	for i, c := range cols {
		if c.Len() < cols[shortest].Len() {
			shortest = i
		}
	}
	if cols[shortest].Len() == 0 {
		return nil
	}

	idx := make([]int, len(cols))
	rows := make([]PosRef, 0, cols[shortest].Len())

outer:
	for _, pos := range cols[shortest].posRefs {
		for i, c := range cols {
			if i == shortest {
				continue
			}
			for idx[i] < len(c.posRefs) && c.posRefs[idx[i]] < pos {
				idx[i]++
			}
			if idx[i] >= len(c.posRefs) {
				break outer
			}
			if c.posRefs[idx[i]] != pos {
				continue outer
			}
		}
		rows = append(rows, pos)
	}

	return rows
}

// unionPosRefs concatenates all columns' references, sorts and deduplicates.
func unionPosRefs(cols []*Column) []PosRef {
	total := 0
	for _, c := range cols {
		total += c.Len()
	}
	if total == 0 {
		return nil
	}

	all := make([]PosRef, 0, total)
	for _, c := range cols {
		all = append(all, c.posRefs...)
	}
	slices.Sort(all)

	return slices.Compact(all)
}
