package zone

// Op is one of the two dynamic-update operations.
type Op string

const (
	// OpAdd adds a record.
	OpAdd Op = "add"
	// OpDelete deletes a record.
	OpDelete Op = "delete"
)

// Instruction is one add/delete operation of a dynamic-update transaction.
type Instruction struct {
	Op     Op
	Record Record
}

// Changes is the reconciled difference between two snapshots of one zone:
// the exact-text set differences plus the serial the new snapshot must
// carry. New points at the (possibly serial-adjusted) snapshot the changes
// lead to.
type Changes struct {
	Origin    string
	Serial    uint32
	Deletions []Record
	Additions []Record
	New       *Snapshot
}

// Empty reports whether the two snapshots were identical, which callers
// must treat differently from a successfully applied change.
func (c *Changes) Empty() bool { return len(c.Deletions) == 0 && len(c.Additions) == 0 }

// Instructions orders the diff for a dynamic-update transaction: deletions
// first, so stale data is gone before records that might otherwise collide
// (for example a type change on the same name) are added.
func (c *Changes) Instructions() []Instruction {
	instrs := make([]Instruction, 0, len(c.Deletions)+len(c.Additions))

	for _, r := range c.Deletions {
		instrs = append(instrs, Instruction{Op: OpDelete, Record: r})
	}

	for _, r := range c.Additions {
		instrs = append(instrs, Instruction{Op: OpAdd, Record: r})
	}

	return instrs
}

// Diff computes the changes that turn the old snapshot into the new one.
// Both snapshots are left untouched; where the new SOA serial has to be
// forced, the adjusted snapshot is rebuilt under Changes.New.
//
// Serial reconciliation: when the new serial does not exceed the old one,
// a snapshot that is otherwise identical keeps the old serial (suppressing
// spurious churn), while any substantive change, in the SOA or in the rest
// of the zone, forces old+1 so a server that rejects non-increasing serials
// accepts the update.
func Diff(old, updated *Snapshot) (*Changes, error) {
	newSOA, ok := updated.SOA()
	if !ok {
		return nil, ErrNoSOA
	}

	newSerial, err := newSOA.SOASerial()
	if err != nil {
		return nil, err
	}

	adjusted := updated

	if oldSOA, ok := old.SOA(); ok {
		oldSerial, err := oldSOA.SOASerial()
		if err != nil {
			return nil, err
		}

		if newSerial <= oldSerial {
			if sameExceptSerial(oldSOA, newSOA) && sameExceptSOA(old, updated) {
				newSerial = oldSerial
			} else {
				newSerial = oldSerial + 1
			}

			adjusted = withSerial(updated, newSerial)
		}
	}

	oldSet := old.texts()
	newSet := adjusted.texts()

	changes := &Changes{Origin: adjusted.Origin, Serial: newSerial, New: adjusted}

	for _, r := range old.Records {
		if _, ok := newSet[r.Text()]; !ok {
			changes.Deletions = append(changes.Deletions, r)
		}
	}

	for _, r := range adjusted.Records {
		if _, ok := oldSet[r.Text()]; !ok {
			changes.Additions = append(changes.Additions, r)
		}
	}

	return changes, nil
}

// sameExceptSOA reports whether the two snapshots carry the same records
// once their SOAs are ignored.
func sameExceptSOA(a, b *Snapshot) bool {
	as := nonSOATexts(a)
	bs := nonSOATexts(b)

	if len(as) != len(bs) {
		return false
	}

	for t := range as {
		if _, ok := bs[t]; !ok {
			return false
		}
	}

	return true
}

func nonSOATexts(s *Snapshot) map[string]struct{} {
	set := make(map[string]struct{}, len(s.Records))

	for _, r := range s.Records {
		if r.Type == TypeSOA {
			continue
		}

		set[r.Text()] = struct{}{}
	}

	return set
}

// withSerial returns a copy of the snapshot with its SOA serial replaced.
func withSerial(s *Snapshot, serial uint32) *Snapshot {
	records := make([]Record, len(s.Records))

	for i, r := range s.Records {
		if r.Type == TypeSOA {
			r = r.WithSOASerial(serial)
		}

		records[i] = r
	}

	return &Snapshot{Origin: s.Origin, DefaultTTL: s.DefaultTTL, Records: records}
}
