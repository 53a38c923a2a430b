package design

// Kind identifies a filter shape. It doubles as the cache key discriminator
// and as the band type in equalizer preset tables.
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindLowShelf
	KindHighShelf
	KindPeaking
	KindNotch
)

func (k Kind) String() string {
	switch k {
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	case KindLowShelf:
		return "lowshelf"
	case KindHighShelf:
		return "highshelf"
	case KindPeaking:
		return "peaking"
	case KindNotch:
		return "notch"
	default:
		return "unknown"
	}
}
