package domain

// Zone is one geographic cluster of non-depot stops. Zones partition the
// non-depot id set: every stop belongs to exactly one zone, and the depot
// belongs to none. Member ids are kept sorted ascending.
type Zone struct {
	ZoneID    int
	MemberIDs []int
	Centroid  Coordinates
}

// Empty reports whether the zone has no members. Empty zones are legal
// output of the decomposer (when k exceeds the number of distinct stop
// coordinates) and are skipped by the tour solver.
func (z Zone) Empty() bool { return len(z.MemberIDs) == 0 }
