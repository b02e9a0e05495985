package prediction

const (
	// MaxSlots bounds a single generation run; wider ranges must use a coarser increment
	MaxSlots = 10000

	// percentBase converts tier percentages into fractions of the prize pool
	percentBase = 100
)
