package compare

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"mit.edu/dsg/qep/common"
	"mit.edu/dsg/qep/planner"
)

// segmentBoundary splits the joined explanations of an alignment block back
// into per-node segments. It assumes no explanation contains ". " itself.
const segmentBoundary = ". "

// describe formats operator tags for change messages: "Seq Scan" -> "Seq-Scan".
func describe(nodes []planner.LinearNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = strings.ReplaceAll(strings.TrimSpace(n.Description), " ", "-")
	}
	return out
}

func explanations(nodes []planner.LinearNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Explanation
	}
	return out
}

func segments(lines []string) []string {
	return strings.Split(strings.Join(lines, " "), segmentBoundary)
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// differ walks the alignment blocks with one 1-based position counter per plan.
type differ struct {
	descA, descB []string
	posA, posB   int
	changes      []ChangeRecord
}

func (d *differ) lookup(desc []string, pos int, plan string) (string, error) {
	if pos < 1 || pos > len(desc) {
		return "", common.NewError(common.DiffAlignmentError, common.StageDiff,
			"position %d is past the end of plan %s (%d nodes)", pos, plan, len(desc))
	}
	return desc[pos-1], nil
}

func (d *differ) emit(kind ChangeKind, message string) {
	common.Assert(d.posA >= 1, "change position %d is not 1-based", d.posA)
	d.changes = append(d.changes, ChangeRecord{Position: d.posA, Kind: kind, Message: message})
}

// Diff aligns the explanations of two linearized plans and reports every
// non-equal block as change records.
//
// Each block is split into ". "-delimited segments, one per plan node. Equal
// and replace segments advance both counters, delete segments only the first.
// Insert segments advance both counters as well, so after an insertion the
// first counter runs ahead of the first plan; positions in messages always
// come from the first counter. A lookup past the end of either plan fails with
// a DiffAlignmentError.
func Diff(a, b []planner.LinearNode) ([]ChangeRecord, error) {
	explA, explB := explanations(a), explanations(b)
	if equalLines(explA, explB) {
		return nil, nil
	}

	d := &differ{descA: describe(a), descB: describe(b), posA: 1, posB: 1}
	matcher := difflib.NewMatcherWithJunk(explA, explB, false, nil)
	for _, op := range matcher.GetOpCodes() {
		blockA, blockB := explA[op.I1:op.I2], explB[op.J1:op.J2]
		switch op.Tag {
		case 'e':
			for range segments(blockB) {
				d.posA++
				d.posB++
			}
		case 'r':
			for range segments(blockB) {
				from, err := d.lookup(d.descA, d.posA, "A")
				if err != nil {
					return nil, err
				}
				to, err := d.lookup(d.descB, d.posB, "B")
				if err != nil {
					return nil, err
				}
				d.emit(Replace, from+" has been replaced by "+to)
				d.posA++
				d.posB++
			}
		case 'd':
			for range segments(blockA) {
				removed, err := d.lookup(d.descA, d.posA, "A")
				if err != nil {
					return nil, err
				}
				d.emit(Delete, removed+" has been removed from the query")
				d.posA++
			}
		case 'i':
			for range segments(blockB) {
				inserted, err := d.lookup(d.descB, d.posB, "B")
				if err != nil {
					return nil, err
				}
				d.emit(Insert, inserted+" has been inserted into the query")
				d.posA++
				d.posB++
			}
		}
	}
	return d.changes, nil
}
