package state

// SearchSource owns the search text shown in the filter prompt.
type SearchSource interface {
	Value() string
	SetValue(string)
	Controlled() bool
}

// LocalSearch keeps the search text inside the list.
type LocalSearch struct {
	value string
}

func (s *LocalSearch) Value() string { return s.value }
func (s *LocalSearch) SetValue(v string) { s.value = v }
func (s *LocalSearch) Controlled() bool { return false }

// ControlledSearch reads the search text from the caller and reports edits back
// through Changed. The list never stores the value itself.
type ControlledSearch struct {
	Get     func() string
	Changed func(string)
}

// NewControlledSearch builds an externally owned search source.
func NewControlledSearch(get func() string, changed func(string)) *ControlledSearch {
	return &ControlledSearch{Get: get, Changed: changed}
}

func (s *ControlledSearch) Value() string {
	if s == nil || s.Get == nil {
		return ""
	}
	return s.Get()
}

func (s *ControlledSearch) SetValue(v string) {
	if s == nil || s.Changed == nil {
		return
	}
	s.Changed(v)
}

func (s *ControlledSearch) Controlled() bool { return true }
