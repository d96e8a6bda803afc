package model

// Entry is a candidate's position in one specific list.
// The same candidate may back several waiting-list entries, each with its own rank.
type Entry struct {
	Candidate *Candidate
	Rank      int
	Status    Status

	// AllocatedIn is set for selected entries only
	AllocatedIn Category

	// ViaReversion marks seats filled from reverted quota capacity
	ViaReversion bool
}

// AllocatedLabel returns the label of the category the entry was allocated in
func (e Entry) AllocatedLabel() string {
	if e.Status != StatusSelected {
		return ""
	}
	if e.ViaReversion {
		return e.AllocatedIn.Label() + " (REMANEJO)"
	}
	return e.AllocatedIn.Label()
}

// QuotaBadges lists the quotas the candidate was eligible for but did not take a seat in
func (e Entry) QuotaBadges() []string {
	if e.Status != StatusSelected {
		return nil
	}

	var badges []string
	c := e.Candidate
	if c.IsEligible(CategoryDisability) && e.AllocatedIn != CategoryDisability {
		badges = append(badges, "PCD")
	}
	if (c.IsEligible(CategoryPublicRegional) || c.IsEligible(CategoryPrivateRegional)) && !e.AllocatedIn.IsRegional() {
		badges = append(badges, "Centro")
	}
	return badges
}

// CategoryLists holds one independently ranked list per category
type CategoryLists struct {
	Disability      []Entry
	PublicRegional  []Entry
	PublicBroad     []Entry
	PrivateRegional []Entry
	PrivateBroad    []Entry
}

// List returns the list of the given category
func (l *CategoryLists) List(category Category) []Entry {
	if p := l.slot(category); p != nil {
		return *p
	}
	return nil
}

// Append adds an entry to the end of the category's list, assigning the next 1-based rank
func (l *CategoryLists) Append(category Category, entry Entry) Entry {
	p := l.slot(category)
	if p == nil {
		return entry
	}
	entry.Rank = len(*p) + 1
	*p = append(*p, entry)
	return entry
}

// Len returns the number of entries across all lists
func (l *CategoryLists) Len() int {
	n := 0
	for _, category := range Categories {
		n += len(l.List(category))
	}
	return n
}

// All returns every entry in publication order
func (l *CategoryLists) All() []Entry {
	all := make([]Entry, 0, l.Len())
	for _, category := range Categories {
		all = append(all, l.List(category)...)
	}
	return all
}

func (l *CategoryLists) slot(category Category) *[]Entry {
	switch category {
	case CategoryDisability:
		return &l.Disability
	case CategoryPublicRegional:
		return &l.PublicRegional
	case CategoryPublicBroad:
		return &l.PublicBroad
	case CategoryPrivateRegional:
		return &l.PrivateRegional
	case CategoryPrivateBroad:
		return &l.PrivateBroad
	}
	return nil
}

// CourseResult is the selection and waiting lists of one course
type CourseResult struct {
	Course   string
	Capacity Capacity
	Selected CategoryLists
	Waiting  CategoryLists
}

// Summary is the aggregate output of one run across every course
type Summary struct {
	TotalProcessed int
	Results        []CourseResult

	// Rows dropped before scoring and candidates with no configured course
	DroppedRows      int
	UnmatchedCourses int
}
