package offering

// Kind discriminates the three purchasable variants. It doubles as the
// commission category used when resolving a house's revenue split.
type Kind string

const (
	KindCeremony Kind = "ceremony"
	KindCourse   Kind = "course"
	KindProduct  Kind = "product"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindCeremony, KindCourse, KindProduct:
		return true
	default:
		return false
	}
}

// IsScheduled reports whether the variant carries a date/time.
func (k Kind) IsScheduled() bool {
	return k == KindCeremony || k == KindCourse
}

// UsesStock reports whether remaining units come from a stock counter
// rather than being derived from confirmed registrations.
func (k Kind) UsesStock() bool {
	return k == KindProduct
}
