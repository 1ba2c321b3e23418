package loginject

// Classification tells adapters which types a Spec should be bound as.
type Classification uint8

const (
	// Declared specs bind exactly their logger type.
	Declared Classification = iota + 1
	// Concrete specs carry the runtime type of a probe instance. Adapters may
	// bind the filtered closure of its embedded types and interfaces.
	Concrete
)

func (c Classification) String() string {
	switch c {
	case Declared:
		return "declared"
	case Concrete:
		return "concrete"
	default:
		return "unknown"
	}
}
