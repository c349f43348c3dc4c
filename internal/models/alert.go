package models

// AlertState is the node-wide storage space alert. Low space on any watched
// disk puts the whole node into AlertLowSpace.
type AlertState int

const (
	AlertOK AlertState = iota
	AlertLowSpace
)

func (a AlertState) String() string {
	switch a {
	case AlertLowSpace:
		return "low_space"
	default:
		return "ok"
	}
}

// MarshalJSON renders the alert as its string form.
func (a AlertState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}
